package mesh

import (
	"strings"

	"github.com/pkg/errors"
)

// BufferFlags describe who owns a byte buffer and whether writable
// views over it may be handed out. The two flags are independent: a
// borrowed buffer may still be mutable, an owned one may be frozen.
type BufferFlags uint8

const (
	// BufferOwned means the holding structure is responsible for the
	// memory and transfers it out on release.
	BufferOwned BufferFlags = 1 << iota
	// BufferMutable permits mutable views over the buffer contents.
	BufferMutable
)

func (f BufferFlags) Has(flags BufferFlags) bool {
	return f&flags == flags
}

func (f BufferFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(BufferOwned) {
		parts = append(parts, "owned")
	}
	if f.Has(BufferMutable) {
		parts = append(parts, "mutable")
	}
	return strings.Join(parts, "|")
}

// Buffer is an owned-or-borrowed byte span. The zero Buffer is an
// empty borrowed span, which is what release operations leave behind.
type Buffer struct {
	data  []byte
	flags BufferFlags
}

// NewBuffer takes ownership of data. The result is owned and mutable.
func NewBuffer(data []byte) Buffer {
	return Buffer{data: data, flags: BufferOwned | BufferMutable}
}

// BorrowBuffer wraps external memory without taking ownership.
// Passing BufferOwned is a contract violation: borrowed memory cannot
// be marked as owned.
func BorrowBuffer(data []byte, flags BufferFlags) (Buffer, error) {
	if flags.Has(BufferOwned) {
		return Buffer{}, errors.Wrapf(ErrInvalidArgument,
			"can't borrow memory with %v flags", flags)
	}
	return Buffer{data: data, flags: flags}, nil
}

func (b *Buffer) Len() int {
	return len(b.data)
}

func (b *Buffer) Flags() BufferFlags {
	return b.flags
}

// Bytes exposes the raw contents. Treat the result as read-only
// unless the buffer is mutable.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// release transfers the contents out, leaving an empty non-owned
// placeholder so later queries report zero sizes instead of dangling.
func (b *Buffer) release() []byte {
	out := b.data
	*b = Buffer{}
	return out
}
