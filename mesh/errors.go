package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrArity is returned when a simplex is given the wrong number of vertices.
	ErrArity = errors.New("mesh: wrong number of vertices")

	// ErrOutOfRange is returned for indices or ids outside a container, a
	// coordinate store or an entity's declared extents.
	ErrOutOfRange = errors.New("mesh: index out of range")

	// ErrUnsupported is returned when a mesh does not provide the requested
	// topological level (e.g. Peaks on a 1D mesh).
	ErrUnsupported = errors.New("mesh: unsupported operation")
)

// ArityError reports a simplex insertion with the wrong vertex count.
type ArityError struct {
	Dim  int
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("mesh: %d-simplex needs %d vertices, got %d", e.Dim, e.Want, e.Got)
}

func (e *ArityError) Unwrap() error { return ErrArity }

// RangeError reports an index outside [0, Len).
type RangeError struct {
	What  string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("mesh: %s %d out of range [0, %d)", e.What, e.Index, e.Len)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUnsupported}, args...)...)
}
