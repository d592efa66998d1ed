package utils

import (
	"bytes"
	"encoding/binary"
)

// AsBytes serializes fixed-size data (structs, arrays, slices of
// numeric types) into little-endian bytes. Meant for building vertex
// and index payloads; serialization failure is a programming error.
func AsBytes(data interface{}) []byte {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// ReadBytes deserializes little-endian raw into out.
func ReadBytes(out interface{}, raw []byte) {
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, out); err != nil {
		panic(err)
	}
}

// ConcatBytes joins byte slices into a freshly allocated buffer.
func ConcatBytes(parts ...[]byte) []byte {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
