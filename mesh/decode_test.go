package mesh

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/x448/float16"

	"github.com/meshforge/meshdata/utils"
)

// vertexMesh wraps a raw payload with a single attribute for decode
// tests.
func vertexMesh(t *testing.T, name AttributeName, format Format, payload []byte, vertexCount, stride int) *MeshData {
	t.Helper()
	a, err := NewAttributeData(name, format, payload, 0, vertexCount, stride)
	if err != nil {
		t.Fatalf("NewAttributeData(%v): %v", format, err)
	}
	m, err := NewVertexMeshData(PrimitiveTriangles, NewBuffer(payload), []AttributeData{a}, nil)
	if err != nil {
		t.Fatalf("NewVertexMeshData: %v", err)
	}
	return m
}

func TestIndicesWidening(t *testing.T) {
	want := []uint32{0, 70000, 1, 2}
	tests := []struct {
		typ     IndexType
		payload []byte
	}{
		{IndexUnsignedByte, utils.AsBytes([]uint8{0, 200, 1, 2})},
		{IndexUnsignedShort, utils.AsBytes([]uint16{0, 60000, 1, 2})},
		{IndexUnsignedInt, utils.AsBytes([]uint32{0, 70000, 1, 2})},
	}
	for _, test := range tests {
		indices, err := NewIndexData(test.typ, 0, len(test.payload))
		if err != nil {
			t.Fatalf("%v: NewIndexData: %v", test.typ, err)
		}
		m, err := NewIndexMeshData(PrimitiveTriangles, NewBuffer(test.payload), indices, nil)
		if err != nil {
			t.Fatalf("%v: NewIndexMeshData: %v", test.typ, err)
		}

		got, err := m.IndicesAsArray()
		if err != nil {
			t.Fatalf("%v: IndicesAsArray: %v", test.typ, err)
		}
		if len(got) != 4 {
			t.Fatalf("%v: decoded %d indices, want 4", test.typ, len(got))
		}

		// Decoding must agree with manually widening the raw rows.
		view, err := m.Indices()
		if err != nil {
			t.Fatalf("%v: Indices: %v", test.typ, err)
		}
		for i := 0; i < view.Len(); i++ {
			row := view.Row(i)
			var manual uint32
			switch test.typ {
			case IndexUnsignedByte:
				manual = uint32(row[0])
			case IndexUnsignedShort:
				manual = uint32(binary.LittleEndian.Uint16(row))
			case IndexUnsignedInt:
				manual = binary.LittleEndian.Uint32(row)
			}
			if got[i] != manual {
				t.Errorf("%v: index %d decoded to %d, manual widening gives %d",
					test.typ, i, got[i], manual)
			}
		}
		if test.typ != IndexUnsignedByte {
			// 8-bit storage can't hold the large value, the other
			// two widths must round-trip the reference exactly.
			wide := want
			if test.typ == IndexUnsignedShort {
				wide = []uint32{0, 60000, 1, 2}
			}
			for i := range wide {
				if got[i] != wide[i] {
					t.Errorf("%v: index %d = %d, want %d", test.typ, i, got[i], wide[i])
				}
			}
		}
	}
}

func TestIndicesIntoSizeMismatch(t *testing.T) {
	payload := utils.AsBytes([]uint16{0, 1, 2})
	indices, err := NewIndexData(IndexUnsignedShort, 0, 6)
	if err != nil {
		t.Fatalf("NewIndexData: %v", err)
	}
	m, err := NewIndexMeshData(PrimitiveTriangles, NewBuffer(payload), indices, nil)
	if err != nil {
		t.Fatalf("NewIndexMeshData: %v", err)
	}
	if err := m.IndicesInto(make([]uint32, 2)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("IndicesInto with short destination: error = %v, want ErrSizeMismatch", err)
	}
}

func TestPositions3DFromTwoComponents(t *testing.T) {
	payload := utils.AsBytes([][2]float32{{1, 2}, {3, 4}})
	m := vertexMesh(t, AttributePosition, FormatOf(2, ComponentFloat), payload, 2, 8)

	got, err := m.Positions3DAsArray(0)
	if err != nil {
		t.Fatalf("Positions3DAsArray: %v", err)
	}
	want := []mgl32.Vec3{{1, 2, 0}, {3, 4, 0}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("positions[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPositions2DFromThreeComponents(t *testing.T) {
	payload := utils.AsBytes([][3]float32{{1, 2, 3}, {4, 5, 6}})
	m := vertexMesh(t, AttributePosition, FormatOf(3, ComponentFloat), payload, 2, 12)

	got, err := m.Positions2DAsArray(0)
	if err != nil {
		t.Fatalf("Positions2DAsArray: %v", err)
	}
	want := []mgl32.Vec2{{1, 2}, {4, 5}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("positions[%d] = %v, want %v (Z must be dropped)", i, got[i], want[i])
		}
	}
}

func TestPositionsIntegerEncodings(t *testing.T) {
	tests := []struct {
		format  Format
		payload []byte
		want    mgl32.Vec3
	}{
		{FormatOf(3, ComponentUnsignedByte), utils.AsBytes([]uint8{0, 128, 255}), mgl32.Vec3{0, 128, 255}},
		{FormatOf(3, ComponentByte), utils.AsBytes([]int8{-128, 0, 127}), mgl32.Vec3{-128, 0, 127}},
		{FormatOf(3, ComponentUnsignedShort), utils.AsBytes([]uint16{0, 300, 65535}), mgl32.Vec3{0, 300, 65535}},
		{FormatOf(3, ComponentShort), utils.AsBytes([]int16{-32768, 0, 32767}), mgl32.Vec3{-32768, 0, 32767}},
		{FormatOf(3, ComponentUnsignedByteNormalized), utils.AsBytes([]uint8{0, 51, 255}), mgl32.Vec3{0, 0.2, 1}},
		{FormatOf(3, ComponentShortNormalized), utils.AsBytes([]int16{-32768, -32767, 32767}), mgl32.Vec3{-1, -1, 1}},
	}
	for _, test := range tests {
		m := vertexMesh(t, AttributePosition, test.format, test.payload, 1, test.format.Size())
		got, err := m.Positions3DAsArray(0)
		if err != nil {
			t.Fatalf("%v: Positions3DAsArray: %v", test.format, err)
		}
		if got[0] != test.want {
			t.Errorf("%v: decoded %v, want %v", test.format, got[0], test.want)
		}
	}
}

func TestPositionsHalfFloat(t *testing.T) {
	payload := utils.AsBytes([]uint16{
		float16.Fromfloat32(1.5).Bits(),
		float16.Fromfloat32(-2).Bits(),
		float16.Fromfloat32(0.25).Bits(),
	})
	m := vertexMesh(t, AttributePosition, FormatOf(3, ComponentHalf), payload, 1, 6)

	got, err := m.Positions3DAsArray(0)
	if err != nil {
		t.Fatalf("Positions3DAsArray: %v", err)
	}
	if got[0] != (mgl32.Vec3{1.5, -2, 0.25}) {
		t.Errorf("half positions = %v, want [1.5 -2 0.25]", got[0])
	}
}

func TestNormalsSignedNormalized(t *testing.T) {
	payload := utils.AsBytes([]int8{127, -127, -128})
	m := vertexMesh(t, AttributeNormal, FormatOf(3, ComponentByteNormalized), payload, 1, 3)

	got, err := m.NormalsAsArray(0)
	if err != nil {
		t.Fatalf("NormalsAsArray: %v", err)
	}
	// The most negative value clamps to -1.
	if got[0] != (mgl32.Vec3{1, -1, -1}) {
		t.Errorf("normals = %v, want [1 -1 -1]", got[0])
	}
}

func TestTextureCoordinatesUnsignedByteNormalized(t *testing.T) {
	payload := utils.AsBytes([]uint8{255, 0, 127, 255})
	m := vertexMesh(t, AttributeTextureCoordinates, FormatOf(2, ComponentUnsignedByteNormalized), payload, 2, 2)

	got, err := m.TextureCoordinates2DAsArray(0)
	if err != nil {
		t.Fatalf("TextureCoordinates2DAsArray: %v", err)
	}
	if got[0] != (mgl32.Vec2{1, 0}) {
		t.Errorf("uv[0] = %v, want [1 0]", got[0])
	}
	if got[1][0] != float32(127)/255 || got[1][1] != 1 {
		t.Errorf("uv[1] = %v, want [127/255 1]", got[1])
	}
}

func TestColorsAlphaFill(t *testing.T) {
	payload := utils.AsBytes([][3]float32{{0.2, 0.4, 0.6}})
	m := vertexMesh(t, AttributeColor, FormatOf(3, ComponentFloat), payload, 1, 12)

	got, err := m.ColorsAsArray(0)
	if err != nil {
		t.Fatalf("ColorsAsArray: %v", err)
	}
	if got[0] != (mgl32.Vec4{0.2, 0.4, 0.6, 1}) {
		t.Errorf("colors = %v, want [0.2 0.4 0.6 1]", got[0])
	}
}

func TestColorsFourComponents(t *testing.T) {
	payload := utils.AsBytes([]uint16{0, 0xffff, 0x8000, 0xffff})
	m := vertexMesh(t, AttributeColor, FormatOf(4, ComponentUnsignedShortNormalized), payload, 1, 8)

	got, err := m.ColorsAsArray(0)
	if err != nil {
		t.Fatalf("ColorsAsArray: %v", err)
	}
	want := mgl32.Vec4{0, 1, float32(0x8000) / 0xffff, 1}
	if got[0] != want {
		t.Errorf("colors = %v, want %v", got[0], want)
	}
}

func TestDecodeInterleaved(t *testing.T) {
	type vertex struct {
		Pos   [3]float32
		Color [4]uint8
		Pad   uint8
	}
	payload := utils.AsBytes([]vertex{
		{Pos: [3]float32{1, 2, 3}, Color: [4]uint8{255, 0, 0, 255}},
		{Pos: [3]float32{4, 5, 6}, Color: [4]uint8{0, 255, 0, 127}},
	})
	const stride = 17
	attributes := []AttributeData{
		mustAttribute(t, AttributePosition, FormatOf(3, ComponentFloat), payload, 0, 2, stride),
		mustAttribute(t, AttributeColor, FormatOf(4, ComponentUnsignedByteNormalized), payload, 12, 2, stride),
	}
	m, err := NewVertexMeshData(PrimitiveTriangles, NewBuffer(payload), attributes, nil)
	if err != nil {
		t.Fatalf("NewVertexMeshData: %v", err)
	}

	positions, err := m.Positions3DAsArray(0)
	if err != nil {
		t.Fatalf("Positions3DAsArray: %v", err)
	}
	if positions[1] != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("positions[1] = %v, want [4 5 6]", positions[1])
	}
	colors, err := m.ColorsAsArray(0)
	if err != nil {
		t.Fatalf("ColorsAsArray: %v", err)
	}
	if colors[0] != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("colors[0] = %v, want [1 0 0 1]", colors[0])
	}
	if colors[1][3] != float32(127)/255 {
		t.Errorf("colors[1].A = %v, want 127/255", colors[1][3])
	}
}

func TestDecodeContractViolations(t *testing.T) {
	payload := utils.AsBytes([][3]float32{{1, 2, 3}})
	m := vertexMesh(t, AttributePosition, FormatOf(3, ComponentFloat), payload, 1, 12)

	if err := m.Positions3DInto(make([]mgl32.Vec3, 2), 0); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Positions3DInto with wrong destination: error = %v, want ErrSizeMismatch", err)
	}
	if err := m.Positions3DInto(make([]mgl32.Vec3, 1), 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Positions3DInto with occurrence 1: error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := m.NormalsAsArray(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("NormalsAsArray without normals: error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := m.ColorsAsArray(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ColorsAsArray without colors: error = %v, want ErrIndexOutOfRange", err)
	}
}
