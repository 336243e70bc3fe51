package odata

import (
	"errors"
	"testing"
)

func TestErrorKindStatusCode(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{ErrKindURL, 400},
		{ErrKindIncompletePath, 400},
		{ErrKindInvalidOperation, 400},
		{ErrKindInvalidQueryTopSkip, 400},
		{ErrKindInvalidQueryOrderBy, 400},
		{ErrKindNotImplemented, 501},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.StatusCode(); got != tt.want {
				t.Errorf("%s.StatusCode() = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	plain := NewError(ErrKindIncompletePath, "missing entity set")
	if got, want := plain.Error(), "IncompletePath: missing entity set"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := WrapError(ErrKindURL, "malformed URL", errors.New("unexpected EOF"))
	if got, want := wrapped.Error(), "Url: malformed URL: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying cause")
	wrapped := WrapError(ErrKindNotImplemented, "function not supported", cause)

	if !errors.Is(wrapped, cause) {
		t.Errorf("errors.Is(wrapped, cause) = false, want true")
	}
	if unwrapped := wrapped.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestCoreErrorAsMatchesKind(t *testing.T) {
	err := NewError(ErrKindInvalidQueryTopSkip, "negative $top")

	var core *CoreError
	if !errors.As(err, &core) {
		t.Fatalf("errors.As() = false, want true")
	}
	if core.Kind != ErrKindInvalidQueryTopSkip {
		t.Errorf("Kind = %q, want %q", core.Kind, ErrKindInvalidQueryTopSkip)
	}
}
