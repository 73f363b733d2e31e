package frame

import (
	"github.com/pkg/errors"
)

// Error kinds. Every error returned by this package wraps exactly one of these,
// test for them with errors.Is.
var (
	// ErrInvalidArgument covers length mismatches, duplicate names, out of range
	// indexes, oversized samples and mismatched join key arity.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned for unknown column names and for typed accessors
	// used against a column of another element type.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedOperation is returned when an operation is undefined for an
	// element type, e.g. arithmetic on booleans.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrNotImplemented is returned for aggregates that are meaningful for a
	// column family but not provided, e.g. Sum over text.
	ErrNotImplemented = errors.New("not implemented")
	// ErrConversion is returned when a value cannot be coerced into a column's
	// element type.
	ErrConversion = errors.New("conversion error")
)

func invalidArgf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func notFoundf(format string, args ...any) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func unsupportedf(format string, args ...any) error {
	return errors.Wrapf(ErrUnsupportedOperation, format, args...)
}

func notImplementedf(format string, args ...any) error {
	return errors.Wrapf(ErrNotImplemented, format, args...)
}

func conversionf(format string, args ...any) error {
	return errors.Wrapf(ErrConversion, format, args...)
}
