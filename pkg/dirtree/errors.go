package dirtree

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Status is the outcome of an operation, mirroring the status values
// of the directory-tree protocol: invalid-argument, not-found, exists,
// not-empty, busy and ok.
type Status int

const (
	StatusOK Status = iota
	StatusInvalidArgument
	StatusNotFound
	StatusExists
	StatusNotEmpty
	StatusBusy
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidArgument:
		return "invalid-argument"
	case StatusNotFound:
		return "not-found"
	case StatusExists:
		return "exists"
	case StatusNotEmpty:
		return "not-empty"
	case StatusBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per non-OK Status. Callers should use
// errors.Is against these rather than comparing error strings.
var (
	ErrInvalidArgument = errors.New(StatusInvalidArgument.String())
	ErrNotFound        = errors.New(StatusNotFound.String())
	ErrExists          = errors.New(StatusExists.String())
	ErrNotEmpty        = errors.New(StatusNotEmpty.String())
	ErrBusy            = errors.New(StatusBusy.String())
)

func sentinelFor(s Status) error {
	switch s {
	case StatusInvalidArgument:
		return ErrInvalidArgument
	case StatusNotFound:
		return ErrNotFound
	case StatusExists:
		return ErrExists
	case StatusNotEmpty:
		return ErrNotEmpty
	case StatusBusy:
		return ErrBusy
	default:
		return nil
	}
}

// statusError wraps a Status with the path(s) that produced it, so
// errors.Is(err, ErrNotFound) still works while the error message
// stays specific.
func statusError(s Status, path string) error {
	sentinel := sentinelFor(s)
	if sentinel == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", sentinel, path)
}

// panicf reports a programming-error condition (a broken locking
// invariant, never a user-facing status) as a fatal process error. Per
// the protocol's error-handling design, lock-primitive failures
// cannot be meaningfully recovered from.
func panicf(format string, args ...any) {
	panic(pkgerrors.Errorf(format, args...))
}
