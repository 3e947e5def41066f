package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the generation pipeline matches
// exactly one of these through errors.Is.
var (
	ErrInput  = errors.New("invalid input")
	ErrData   = errors.New("invalid data")
	ErrRender = errors.New("render failed")
	ErrIO     = errors.New("i/o failure")
)

// Error carries the kind of a pipeline failure together with the
// operation that produced it and the underlying cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// InputError reports a missing or invalid form field or a malformed
// spreadsheet schema.
func InputError(op string, format string, args ...any) error {
	return &Error{Kind: ErrInput, Op: op, Err: fmt.Errorf(format, args...)}
}

// DataError reports a value the aggregator cannot compute with.
func DataError(op string, format string, args ...any) error {
	return &Error{Kind: ErrData, Op: op, Err: fmt.Errorf(format, args...)}
}

// RenderError wraps a drawing or barcode failure.
func RenderError(op string, err error) error {
	return &Error{Kind: ErrRender, Op: op, Err: err}
}

// IOError wraps a filesystem failure.
func IOError(op string, err error) error {
	return &Error{Kind: ErrIO, Op: op, Err: err}
}

// KindOf returns the kind of err, or nil when err is not a pipeline error.
func KindOf(err error) error {
	for _, kind := range []error{ErrInput, ErrData, ErrRender, ErrIO} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
