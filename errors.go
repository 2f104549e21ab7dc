package meshgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented is returned by Factory.Create for dimension
	// combinations without a reconstruction algorithm.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnknownSegment is returned when a segment id or name is not part of
	// the system.
	ErrUnknownSegment = errors.New("unknown segment")

	// ErrSameSegment is returned when an interface is requested between a
	// segment and itself.
	ErrSameSegment = errors.New("interface needs two distinct segments")

	// ErrAttributeExists is returned when an attribute name is already taken.
	ErrAttributeExists = errors.New("attribute already exists")
)

// ErrDimension reports a factory or system shape without an implementation.
//
// It matches ErrNotImplemented via errors.Is.
type ErrDimension struct {
	Dim int
	Top int
}

func (e *ErrDimension) Error() string {
	return fmt.Sprintf("reconstruction for dim=%d top=%d: %s", e.Dim, e.Top, ErrNotImplemented)
}

func (e *ErrDimension) Unwrap() error { return ErrNotImplemented }

// ErrSegment reports a lookup of a segment that does not exist.
//
// It matches ErrUnknownSegment via errors.Is.
type ErrSegment struct {
	ID   ID
	Name string
}

func (e *ErrSegment) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %q", ErrUnknownSegment, e.Name)
	}
	return fmt.Sprintf("%s: id %d", ErrUnknownSegment, e.ID)
}

func (e *ErrSegment) Unwrap() error { return ErrUnknownSegment }
