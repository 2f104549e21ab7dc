package triangle

import "errors"

var (
	// ErrInvalidInput is returned for malformed point, segment or marker
	// arrays.
	ErrInvalidInput = errors.New("triangle: invalid input")

	// ErrConstraintMissing is returned when a constraint segment is not an
	// edge of the computed triangulation.
	ErrConstraintMissing = errors.New("triangle: constraint segment missing from triangulation")

	// ErrUnsupportedSwitch is returned for switches an engine (or the
	// parser) does not support.
	ErrUnsupportedSwitch = errors.New("triangle: unsupported switch")
)
