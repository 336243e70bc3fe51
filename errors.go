package odata

import (
	"fmt"

	"github.com/nlstn/go-odata-core/internal/odataerr"
)

// ErrorKind classifies a core parsing/lowering failure. Every value here is a
// terminal failure with no retry semantics; the HTTP adapter maps it to a
// status code and an opaque message, as described in spec.md §7.
type ErrorKind string

const (
	// ErrKindURL indicates the request URL was rejected by URL machinery.
	ErrKindURL ErrorKind = "Url"

	// ErrKindIncompletePath indicates the path lacks an entity-set segment,
	// or a $filter clause was truncated mid-token.
	ErrKindIncompletePath ErrorKind = "IncompletePath"

	// ErrKindInvalidOperation indicates a $-segment in the path is not one of
	// $count, $value, $all.
	ErrKindInvalidOperation ErrorKind = "InvalidOperation"

	// ErrKindInvalidQueryTopSkip indicates $top or $skip was not a
	// non-negative integer.
	ErrKindInvalidQueryTopSkip ErrorKind = "InvalidQueryTopSkip"

	// ErrKindInvalidQueryOrderBy indicates a malformed $orderby entry.
	ErrKindInvalidQueryOrderBy ErrorKind = "InvalidQueryOrderBy"

	// ErrKindNotImplemented indicates lowering reached a Has or Function
	// filter operator on a matched column.
	ErrKindNotImplemented ErrorKind = "NotImplemented"
)

// StatusCode returns the HTTP status code an adapter should surface for this
// error kind, per the taxonomy table in spec.md §7.
func (k ErrorKind) StatusCode() int {
	switch k {
	case ErrKindNotImplemented:
		return 501
	default:
		return 400
	}
}

// CoreError is a structured error produced by the parser or the lowering
// engine. It wraps an underlying cause (when one exists) while remaining
// usable with errors.Is/errors.As via Unwrap.
type CoreError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *CoreError) Unwrap() error {
	return e.Err
}

// NewError constructs a CoreError of the given kind.
func NewError(kind ErrorKind, message string) *CoreError {
	return &CoreError{Kind: kind, Message: message}
}

// WrapError constructs a CoreError of the given kind, wrapping an underlying cause.
func WrapError(kind ErrorKind, message string, err error) *CoreError {
	return &CoreError{Kind: kind, Message: message, Err: err}
}

// coreErrorKinds maps the internal odataerr.Kind tags the parser, filter, and
// lowering packages raise onto the public ErrorKind taxonomy.
var coreErrorKinds = map[odataerr.Kind]ErrorKind{
	odataerr.KindURL:                 ErrKindURL,
	odataerr.KindIncompletePath:      ErrKindIncompletePath,
	odataerr.KindInvalidOperation:    ErrKindInvalidOperation,
	odataerr.KindInvalidQueryTopSkip: ErrKindInvalidQueryTopSkip,
	odataerr.KindInvalidQueryOrderBy: ErrKindInvalidQueryOrderBy,
	odataerr.KindNotImplemented:      ErrKindNotImplemented,
}

// asCoreError converts an *odataerr.Error raised by an internal package into
// the public *CoreError type, so callers never see an internal error type
// across the module boundary. Errors that are already a *CoreError, or that
// don't originate from odataerr, pass through unchanged.
func asCoreError(err error) error {
	if err == nil {
		return nil
	}
	inner, ok := err.(*odataerr.Error)
	if !ok {
		return err
	}
	kind, ok := coreErrorKinds[inner.Kind]
	if !ok {
		kind = ErrKindURL
	}
	return &CoreError{Kind: kind, Message: inner.Message, Err: inner.Err}
}
