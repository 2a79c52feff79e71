package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedReference is returned when a joint names a body or joint
	// index that does not resolve to something it can be built against.
	ErrMalformedReference = errors.New("loader: malformed reference")

	// ErrEngineRejected wraps any failure reported by the physics backend.
	ErrEngineRejected = errors.New("loader: engine rejected definition")
)

// ReferenceError describes one unresolvable index. Kind is "body" or
// "joint"; Count is the length of the sequence the index was checked
// against.
type ReferenceError struct {
	Kind   string
	Joint  int
	Field  string
	Index  int
	Count  int
	Reason string
}

func (e *ReferenceError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = fmt.Sprintf("out of range [0,%d)", e.Count)
	}
	return fmt.Sprintf("loader: joint %d: %s %s index %d: %s", e.Joint, e.Field, e.Kind, e.Index, reason)
}

func (e *ReferenceError) Unwrap() error { return ErrMalformedReference }

func rejected(what string, err error) error {
	return fmt.Errorf("loader: %s: %w: %w", what, ErrEngineRejected, err)
}
