package mesh

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Attribute payloads are little-endian, matching glTF and every other
// format this package is fed from.

type componentDecoder func(b []byte) float32

func decodeFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func decodeHalf(b []byte) float32 {
	return float16.Frombits(binary.LittleEndian.Uint16(b)).Float32()
}

func decodeUnsignedByte(b []byte) float32 {
	return float32(b[0])
}

func decodeByte(b []byte) float32 {
	return float32(int8(b[0]))
}

func decodeUnsignedShort(b []byte) float32 {
	return float32(binary.LittleEndian.Uint16(b))
}

func decodeShort(b []byte) float32 {
	return float32(int16(binary.LittleEndian.Uint16(b)))
}

func decodeUnsignedByteNormalized(b []byte) float32 {
	return float32(b[0]) / 0xff
}

func decodeByteNormalized(b []byte) float32 {
	return unpackSigned(float32(int8(b[0])), 0x7f)
}

func decodeUnsignedShortNormalized(b []byte) float32 {
	return float32(binary.LittleEndian.Uint16(b)) / 0xffff
}

func decodeShortNormalized(b []byte) float32 {
	return unpackSigned(float32(int16(binary.LittleEndian.Uint16(b))), 0x7fff)
}

// unpackSigned maps the full signed integer range to [-1,1]. The most
// negative value maps slightly below -1 and is clamped.
func unpackSigned(v, max float32) float32 {
	if r := v / max; r >= -1 {
		return r
	}
	return -1
}

// componentDecoders is the dispatch table of the conversion engine,
// indexed by ComponentType.
var componentDecoders = [componentTypesEnd]componentDecoder{
	ComponentFloat:                   decodeFloat,
	ComponentHalf:                    decodeHalf,
	ComponentUnsignedByte:            decodeUnsignedByte,
	ComponentByte:                    decodeByte,
	ComponentUnsignedShort:           decodeUnsignedShort,
	ComponentShort:                   decodeShort,
	ComponentUnsignedByteNormalized:  decodeUnsignedByteNormalized,
	ComponentByteNormalized:          decodeByteNormalized,
	ComponentUnsignedShortNormalized: decodeUnsignedShortNormalized,
	ComponentShortNormalized:         decodeShortNormalized,
}

// normalComponent reports component encodings valid for normal
// storage: unsigned and non-normalized integers are not.
func normalComponent(t ComponentType) bool {
	switch t {
	case ComponentFloat, ComponentHalf, ComponentByteNormalized, ComponentShortNormalized:
		return true
	}
	return false
}

// colorComponent reports component encodings valid for color storage.
func colorComponent(t ComponentType) bool {
	switch t {
	case ComponentFloat, ComponentHalf,
		ComponentUnsignedByteNormalized, ComponentUnsignedShortNormalized:
		return true
	}
	return false
}

// decodeAttribute walks every element of a, decodes components
// 0..components-1 through the format's component decoder and hands
// them to emit. The format is expected to be pre-validated; an
// encoding outside the recognized table is a construction-time
// validation gap and panics.
func (m *MeshData) decodeAttribute(a *AttributeData, components int, emit func(vertex, component int, value float32)) {
	t := a.format.ComponentType()
	if t == 0 || t >= componentTypesEnd || componentDecoders[t] == nil {
		panic(fmt.Sprintf("unsupported component type in %v", a.format))
	}
	dec := componentDecoders[t]
	size := t.Size()
	data := m.vertexData.data
	for i := 0; i < m.vertexCount; i++ {
		off := a.offset + i*a.stride
		for c := 0; c < components; c++ {
			emit(i, c, dec(data[off+c*size:]))
		}
	}
}

// checkDecode validates the (name, id) occurrence and the destination
// length shared by every *Into operation. No output is written before
// these checks pass.
func (m *MeshData) checkDecode(name AttributeName, id, dstLen int) (*AttributeData, error) {
	attrID := m.attributeFor(name, id)
	if attrID < 0 {
		return nil, errors.Wrapf(ErrIndexOutOfRange,
			"index %d out of range for %d %v attributes",
			id, m.AttributeCountOf(name), name)
	}
	if dstLen != m.vertexCount {
		return nil, errors.Wrapf(ErrSizeMismatch,
			"expected a destination with %d elements but got %d",
			m.vertexCount, dstLen)
	}
	return &m.attributes[attrID], nil
}

// IndicesInto decodes every stored index, regardless of width, into
// 32-bit unsigned values. The destination length must equal
// IndexCount exactly.
func (m *MeshData) IndicesInto(dst []uint32) error {
	if !m.IsIndexed() {
		return errors.Wrap(ErrInvalidState, "the mesh is not indexed")
	}
	count := m.indexSize / m.indexType.Size()
	if len(dst) != count {
		return errors.Wrapf(ErrSizeMismatch,
			"expected a destination with %d elements but got %d", count, len(dst))
	}
	data := m.indexBytes()
	switch m.indexType {
	case IndexUnsignedByte:
		for i := range dst {
			dst[i] = uint32(data[i])
		}
	case IndexUnsignedShort:
		for i := range dst {
			dst[i] = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		}
	case IndexUnsignedInt:
		for i := range dst {
			dst[i] = binary.LittleEndian.Uint32(data[i*4:])
		}
	default:
		panic(fmt.Sprintf("unknown index type %v", m.indexType))
	}
	return nil
}

// IndicesAsArray is the allocating form of IndicesInto.
func (m *MeshData) IndicesAsArray() ([]uint32, error) {
	if !m.IsIndexed() {
		return nil, errors.Wrap(ErrInvalidState, "the mesh is not indexed")
	}
	out := make([]uint32, m.indexSize/m.indexType.Size())
	if err := m.IndicesInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Positions2DInto decodes the id-th position attribute into 2D float
// vectors. 3-component sources have their Z dropped.
func (m *MeshData) Positions2DInto(dst []mgl32.Vec2, id int) error {
	a, err := m.checkDecode(AttributePosition, id, len(dst))
	if err != nil {
		return err
	}
	switch a.format.Components() {
	case 2, 3:
		m.decodeAttribute(a, 2, func(vertex, component int, value float32) {
			dst[vertex][component] = value
		})
	default:
		panic(fmt.Sprintf("unsupported position format %v", a.format))
	}
	return nil
}

// Positions2DAsArray is the allocating form of Positions2DInto.
func (m *MeshData) Positions2DAsArray(id int) ([]mgl32.Vec2, error) {
	out := make([]mgl32.Vec2, m.vertexCount)
	if err := m.Positions2DInto(out, id); err != nil {
		return nil, err
	}
	return out, nil
}

// Positions3DInto decodes the id-th position attribute into 3D float
// vectors. 2-component sources populate X/Y and get Z filled with 0.
func (m *MeshData) Positions3DInto(dst []mgl32.Vec3, id int) error {
	a, err := m.checkDecode(AttributePosition, id, len(dst))
	if err != nil {
		return err
	}
	switch a.format.Components() {
	case 2:
		m.decodeAttribute(a, 2, func(vertex, component int, value float32) {
			dst[vertex][component] = value
		})
		for i := range dst {
			dst[i][2] = 0
		}
	case 3:
		m.decodeAttribute(a, 3, func(vertex, component int, value float32) {
			dst[vertex][component] = value
		})
	default:
		panic(fmt.Sprintf("unsupported position format %v", a.format))
	}
	return nil
}

// Positions3DAsArray is the allocating form of Positions3DInto.
func (m *MeshData) Positions3DAsArray(id int) ([]mgl32.Vec3, error) {
	out := make([]mgl32.Vec3, m.vertexCount)
	if err := m.Positions3DInto(out, id); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalsInto decodes the id-th normal attribute. Normals are always
// 3-component and only float, half and signed-normalized storage is
// recognized.
func (m *MeshData) NormalsInto(dst []mgl32.Vec3, id int) error {
	a, err := m.checkDecode(AttributeNormal, id, len(dst))
	if err != nil {
		return err
	}
	if a.format.Components() != 3 || !normalComponent(a.format.ComponentType()) {
		panic(fmt.Sprintf("unsupported normal format %v", a.format))
	}
	m.decodeAttribute(a, 3, func(vertex, component int, value float32) {
		dst[vertex][component] = value
	})
	return nil
}

// NormalsAsArray is the allocating form of NormalsInto.
func (m *MeshData) NormalsAsArray(id int) ([]mgl32.Vec3, error) {
	out := make([]mgl32.Vec3, m.vertexCount)
	if err := m.NormalsInto(out, id); err != nil {
		return nil, err
	}
	return out, nil
}

// TextureCoordinates2DInto decodes the id-th texture coordinate
// attribute. Texture coordinates are always 2-component; the full
// encoding set is recognized.
func (m *MeshData) TextureCoordinates2DInto(dst []mgl32.Vec2, id int) error {
	a, err := m.checkDecode(AttributeTextureCoordinates, id, len(dst))
	if err != nil {
		return err
	}
	if a.format.Components() != 2 {
		panic(fmt.Sprintf("unsupported texture coordinate format %v", a.format))
	}
	m.decodeAttribute(a, 2, func(vertex, component int, value float32) {
		dst[vertex][component] = value
	})
	return nil
}

// TextureCoordinates2DAsArray is the allocating form of
// TextureCoordinates2DInto.
func (m *MeshData) TextureCoordinates2DAsArray(id int) ([]mgl32.Vec2, error) {
	out := make([]mgl32.Vec2, m.vertexCount)
	if err := m.TextureCoordinates2DInto(out, id); err != nil {
		return nil, err
	}
	return out, nil
}

// ColorsInto decodes the id-th color attribute into RGBA float
// vectors. 3-component sources get alpha filled with 1. Only float,
// half and unsigned-normalized storage is recognized.
func (m *MeshData) ColorsInto(dst []mgl32.Vec4, id int) error {
	a, err := m.checkDecode(AttributeColor, id, len(dst))
	if err != nil {
		return err
	}
	if !colorComponent(a.format.ComponentType()) {
		panic(fmt.Sprintf("unsupported color format %v", a.format))
	}
	switch a.format.Components() {
	case 3:
		m.decodeAttribute(a, 3, func(vertex, component int, value float32) {
			dst[vertex][component] = value
		})
		for i := range dst {
			dst[i][3] = 1
		}
	case 4:
		m.decodeAttribute(a, 4, func(vertex, component int, value float32) {
			dst[vertex][component] = value
		})
	default:
		panic(fmt.Sprintf("unsupported color format %v", a.format))
	}
	return nil
}

// ColorsAsArray is the allocating form of ColorsInto.
func (m *MeshData) ColorsAsArray(id int) ([]mgl32.Vec4, error) {
	out := make([]mgl32.Vec4, m.vertexCount)
	if err := m.ColorsInto(out, id); err != nil {
		return nil, err
	}
	return out, nil
}
