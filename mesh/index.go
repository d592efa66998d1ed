package mesh

import "github.com/pkg/errors"

// IndexType is the integer width of stored mesh indices.
type IndexType uint8

const (
	// IndexTypeNone marks a mesh as not indexed.
	IndexTypeNone IndexType = iota
	IndexUnsignedByte
	IndexUnsignedShort
	IndexUnsignedInt
)

// Size is the byte size of one index element, 0 for IndexTypeNone.
func (t IndexType) Size() int {
	switch t {
	case IndexUnsignedByte:
		return 1
	case IndexUnsignedShort:
		return 2
	case IndexUnsignedInt:
		return 4
	}
	return 0
}

func (t IndexType) String() string {
	switch t {
	case IndexTypeNone:
		return "none"
	case IndexUnsignedByte:
		return "ubyte"
	case IndexUnsignedShort:
		return "ushort"
	case IndexUnsignedInt:
		return "uint"
	}
	return "unknown"
}

// IndexData describes the element type and the sub-view of the index
// buffer that holds the indices. The view is addressed by byte offset
// so descriptors stay valid when the buffer itself is moved. The zero
// IndexData describes an unindexed mesh.
type IndexData struct {
	typ    IndexType
	offset int
	size   int
}

// NewIndexData describes size bytes of indices of type typ starting
// offset bytes into the eventual index buffer.
func NewIndexData(typ IndexType, offset, size int) (IndexData, error) {
	if offset < 0 || size < 0 {
		return IndexData{}, errors.Wrapf(ErrInvalidArgument,
			"negative index view offset %d or size %d", offset, size)
	}
	if typ == IndexTypeNone {
		if offset != 0 || size != 0 {
			return IndexData{}, errors.Wrap(ErrInvalidArgument,
				"index view passed without an index type")
		}
		return IndexData{}, nil
	}
	if size%typ.Size() != 0 {
		return IndexData{}, errors.Wrapf(ErrInvalidArgument,
			"view size %d does not correspond to %v indices", size, typ)
	}
	return IndexData{typ: typ, offset: offset, size: size}, nil
}

func (d IndexData) Type() IndexType {
	return d.typ
}

func (d IndexData) Offset() int {
	return d.offset
}

func (d IndexData) Size() int {
	return d.size
}
