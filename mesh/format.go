package mesh

import "fmt"

// ComponentType is the storage encoding of a single vertex attribute
// component. Normalized variants map the integer's full range to
// [0,1] (unsigned) or [-1,1] (signed) on decode.
type ComponentType uint8

const (
	ComponentFloat ComponentType = iota + 1
	ComponentHalf
	ComponentUnsignedByte
	ComponentByte
	ComponentUnsignedShort
	ComponentShort
	ComponentUnsignedByteNormalized
	ComponentByteNormalized
	ComponentUnsignedShortNormalized
	ComponentShortNormalized

	componentTypesEnd
)

func (t ComponentType) Size() int {
	switch t {
	case ComponentUnsignedByte, ComponentByte,
		ComponentUnsignedByteNormalized, ComponentByteNormalized:
		return 1
	case ComponentHalf, ComponentUnsignedShort, ComponentShort,
		ComponentUnsignedShortNormalized, ComponentShortNormalized:
		return 2
	case ComponentFloat:
		return 4
	}
	panic(fmt.Sprintf("unknown component type %d", t))
}

func (t ComponentType) Normalized() bool {
	switch t {
	case ComponentUnsignedByteNormalized, ComponentByteNormalized,
		ComponentUnsignedShortNormalized, ComponentShortNormalized:
		return true
	}
	return false
}

func (t ComponentType) String() string {
	switch t {
	case ComponentFloat:
		return "float"
	case ComponentHalf:
		return "half"
	case ComponentUnsignedByte:
		return "ubyte"
	case ComponentByte:
		return "byte"
	case ComponentUnsignedShort:
		return "ushort"
	case ComponentShort:
		return "short"
	case ComponentUnsignedByteNormalized:
		return "ubyteN"
	case ComponentByteNormalized:
		return "byteN"
	case ComponentUnsignedShortNormalized:
		return "ushortN"
	case ComponentShortNormalized:
		return "shortN"
	}
	return fmt.Sprintf("ComponentType(%d)", uint8(t))
}

// Format is a closed enumeration of vertex attribute storage
// encodings, packed from a component count (2, 3 or 4) and a
// ComponentType. The zero Format describes nothing and is rejected by
// MeshData construction.
type Format uint16

// FormatOf packs components and t into a Format. Values outside the
// supported grid panic: the enumeration is closed.
func FormatOf(components int, t ComponentType) Format {
	if components < 2 || components > 4 {
		panic(fmt.Sprintf("unsupported component count %d", components))
	}
	if t == 0 || t >= componentTypesEnd {
		panic(fmt.Sprintf("unknown component type %d", t))
	}
	return Format(uint16(components)<<8 | uint16(t))
}

func (f Format) Components() int {
	return int(f >> 8)
}

func (f Format) ComponentType() ComponentType {
	return ComponentType(f)
}

// Size is the byte size of one element in this format.
func (f Format) Size() int {
	return f.Components() * f.ComponentType().Size()
}

func (f Format) Normalized() bool {
	return f.ComponentType().Normalized()
}

func (f Format) String() string {
	if f == 0 {
		return "none"
	}
	return fmt.Sprintf("%sx%d", f.ComponentType(), f.Components())
}
