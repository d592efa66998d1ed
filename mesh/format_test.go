package mesh

import "testing"

var formatSizeTests = []struct {
	format     Format
	components int
	size       int
	normalized bool
	str        string
}{
	{FormatOf(2, ComponentFloat), 2, 8, false, "floatx2"},
	{FormatOf(3, ComponentFloat), 3, 12, false, "floatx3"},
	{FormatOf(4, ComponentFloat), 4, 16, false, "floatx4"},
	{FormatOf(3, ComponentHalf), 3, 6, false, "halfx3"},
	{FormatOf(2, ComponentUnsignedByte), 2, 2, false, "ubytex2"},
	{FormatOf(3, ComponentByteNormalized), 3, 3, true, "byteNx3"},
	{FormatOf(4, ComponentUnsignedShortNormalized), 4, 8, true, "ushortNx4"},
	{FormatOf(2, ComponentShort), 2, 4, false, "shortx2"},
}

func TestFormatProperties(t *testing.T) {
	for _, test := range formatSizeTests {
		if got := test.format.Components(); got != test.components {
			t.Errorf("%v.Components() = %d, want %d", test.format, got, test.components)
		}
		if got := test.format.Size(); got != test.size {
			t.Errorf("%v.Size() = %d, want %d", test.format, got, test.size)
		}
		if got := test.format.Normalized(); got != test.normalized {
			t.Errorf("%v.Normalized() = %v, want %v", test.format, got, test.normalized)
		}
		if got := test.format.String(); got != test.str {
			t.Errorf("Format.String() = %q, want %q", got, test.str)
		}
	}
}

func TestZeroFormat(t *testing.T) {
	var f Format
	if f.String() != "none" {
		t.Errorf("zero Format String() = %q, want \"none\"", f.String())
	}
}

var indexTypeSizeTests = []struct {
	typ  IndexType
	size int
}{
	{IndexTypeNone, 0},
	{IndexUnsignedByte, 1},
	{IndexUnsignedShort, 2},
	{IndexUnsignedInt, 4},
}

func TestIndexTypeSize(t *testing.T) {
	for _, test := range indexTypeSizeTests {
		if got := test.typ.Size(); got != test.size {
			t.Errorf("%v.Size() = %d, want %d", test.typ, got, test.size)
		}
	}
}

func TestCustomAttributeNames(t *testing.T) {
	name := CustomAttribute(7)
	if !name.IsCustom() {
		t.Fatalf("CustomAttribute(7).IsCustom() = false")
	}
	if id := name.CustomAttributeID(); id != 7 {
		t.Errorf("CustomAttributeID() = %d, want 7", id)
	}
	if AttributePosition.IsCustom() {
		t.Errorf("AttributePosition.IsCustom() = true")
	}
}

func TestBufferFlags(t *testing.T) {
	b := NewBuffer(make([]byte, 4))
	if !b.Flags().Has(BufferOwned | BufferMutable) {
		t.Errorf("NewBuffer flags = %v, want owned|mutable", b.Flags())
	}
	borrowed, err := BorrowBuffer(make([]byte, 4), BufferMutable)
	if err != nil {
		t.Fatalf("BorrowBuffer: %v", err)
	}
	if borrowed.Flags().Has(BufferOwned) {
		t.Errorf("borrowed buffer reports owned")
	}
	if got := (BufferOwned | BufferMutable).String(); got != "owned|mutable" {
		t.Errorf("BufferFlags.String() = %q", got)
	}
}
