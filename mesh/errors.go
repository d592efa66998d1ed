package mesh

import "github.com/pkg/errors"

// All failures in this package are caller contract violations, not
// transient conditions. Callers match them with errors.Is.
var (
	// ErrInvalidArgument reports malformed construction input.
	ErrInvalidArgument = errors.New("mesh: invalid argument")
	// ErrInvalidState reports an operation that requires a condition
	// not currently true, e.g. index queries on an unindexed mesh.
	ErrInvalidState = errors.New("mesh: invalid state")
	// ErrIndexOutOfRange reports a positional or occurrence index past
	// the available count.
	ErrIndexOutOfRange = errors.New("mesh: index out of range")
	// ErrSizeMismatch reports a destination buffer whose length does
	// not match the expected element count.
	ErrSizeMismatch = errors.New("mesh: size mismatch")
)
