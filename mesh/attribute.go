package mesh

import (
	"fmt"

	"github.com/pkg/errors"
)

// AttributeName is the semantic tag of a vertex attribute. Values at
// or above AttributeCustom are caller-defined.
type AttributeName uint16

const (
	AttributePosition AttributeName = iota + 1
	AttributeNormal
	AttributeTextureCoordinates
	AttributeColor
)

// AttributeCustom is the first caller-defined attribute name.
// CustomAttribute(i) and CustomAttributeID recover the mapping.
const AttributeCustom AttributeName = 0x8000

func CustomAttribute(id uint16) AttributeName {
	return AttributeCustom + AttributeName(id)
}

func (n AttributeName) IsCustom() bool {
	return n >= AttributeCustom
}

// CustomAttributeID is the inverse of CustomAttribute. Calling it on
// a builtin name is a programming error.
func (n AttributeName) CustomAttributeID() uint16 {
	if !n.IsCustom() {
		panic(fmt.Sprintf("%v is not a custom attribute", n))
	}
	return uint16(n - AttributeCustom)
}

func (n AttributeName) String() string {
	if n.IsCustom() {
		return fmt.Sprintf("custom(%d)", n.CustomAttributeID())
	}
	switch n {
	case AttributePosition:
		return "position"
	case AttributeNormal:
		return "normal"
	case AttributeTextureCoordinates:
		return "texturecoords"
	case AttributeColor:
		return "color"
	}
	return fmt.Sprintf("AttributeName(%d)", uint16(n))
}

// AttributeData describes one vertex attribute: semantic name,
// storage format and a strided view into the vertex buffer. The view
// is either bound (created together with its backing buffer) or
// offset-only, carrying just a byte offset that is resolved against a
// concrete buffer at MeshData construction. Offset-only descriptors
// can be value-copied and relocated freely before binding.
type AttributeData struct {
	name        AttributeName
	format      Format
	vertexCount int
	stride      int
	offset      int
	bound       []byte // the buffer the view was created against, nil when offset-only
	offsetOnly  bool
}

func checkAttribute(format Format, offset, vertexCount, stride int) error {
	if offset < 0 || vertexCount < 0 {
		return errors.Wrapf(ErrInvalidArgument,
			"negative attribute offset %d or vertex count %d", offset, vertexCount)
	}
	if vertexCount != 0 && stride < format.Size() {
		return errors.Wrapf(ErrInvalidArgument,
			"expected stride to be positive and enough to fit %v, got %d",
			format, stride)
	}
	return nil
}

// NewAttributeData describes vertexCount elements of format laid out
// every stride bytes, starting offset bytes into vertexData. The
// descriptor remembers vertexData so MeshData construction can verify
// it was built against the right buffer.
func NewAttributeData(name AttributeName, format Format, vertexData []byte, offset, vertexCount, stride int) (AttributeData, error) {
	if err := checkAttribute(format, offset, vertexCount, stride); err != nil {
		return AttributeData{}, err
	}
	return AttributeData{
		name:        name,
		format:      format,
		vertexCount: vertexCount,
		stride:      stride,
		offset:      offset,
		bound:       vertexData,
	}, nil
}

// OffsetOnlyAttributeData describes an attribute by byte offset
// alone, to be bound to a concrete vertex buffer at MeshData
// construction.
func OffsetOnlyAttributeData(name AttributeName, format Format, offset, vertexCount, stride int) (AttributeData, error) {
	if err := checkAttribute(format, offset, vertexCount, stride); err != nil {
		return AttributeData{}, err
	}
	return AttributeData{
		name:        name,
		format:      format,
		vertexCount: vertexCount,
		stride:      stride,
		offset:      offset,
		offsetOnly:  true,
	}, nil
}

func (a *AttributeData) Name() AttributeName {
	return a.name
}

func (a *AttributeData) Format() Format {
	return a.format
}

func (a *AttributeData) VertexCount() int {
	return a.vertexCount
}

func (a *AttributeData) Stride() int {
	return a.stride
}

// Offset is the byte offset of the first element from the start of
// the vertex buffer.
func (a *AttributeData) Offset() int {
	return a.offset
}

func (a *AttributeData) IsOffsetOnly() bool {
	return a.offsetOnly
}

// sameBacking reports whether the descriptor was created against
// data. Offset-only descriptors bind to any buffer.
func (a *AttributeData) sameBacking(data []byte) bool {
	if a.offsetOnly {
		return true
	}
	if len(a.bound) != len(data) {
		return false
	}
	if len(data) == 0 {
		return true
	}
	return &a.bound[0] == &data[0]
}
