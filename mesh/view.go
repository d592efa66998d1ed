package mesh

// RowView is a strided two-dimensional byte view shaped
// [Len()][RowSize()]: fixed-size byte rows spaced Stride() bytes
// apart in a shared backing buffer. Index and attribute accessors
// return it so callers can walk raw elements without committing to a
// concrete element type. Rows returned by mutable accessors write
// through to the underlying buffer.
type RowView struct {
	data    []byte
	count   int
	rowSize int
	stride  int
}

func (v RowView) Len() int {
	return v.count
}

func (v RowView) RowSize() int {
	return v.rowSize
}

func (v RowView) Stride() int {
	return v.stride
}

// Row returns the i-th element's bytes. The slice is capped to the
// row, so appends don't bleed into neighbouring elements.
func (v RowView) Row(i int) []byte {
	if i < 0 || i >= v.count {
		panic("mesh: row index out of view bounds")
	}
	off := i * v.stride
	return v.data[off : off+v.rowSize : off+v.rowSize]
}
