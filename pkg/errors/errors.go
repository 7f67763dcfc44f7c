// Package errors defines the error kinds reported by the photometry pipeline.
//
// Every kind is deterministic: it describes a problem with the inputs or the
// output location, never a transient fault, so callers should not retry.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	// KindConfiguration covers unknown bands, missing files and malformed tables.
	KindConfiguration Kind = "configuration"
	// KindNumericDegeneracy means the filter response integrates to zero.
	KindNumericDegeneracy Kind = "numeric-degeneracy"
	// KindOutputConflict means the output exists and overwrite was not requested.
	KindOutputConflict Kind = "output-conflict"
)

// Sentinels for use with errors.Is.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
	ErrOutputConflict    = errors.New("output conflict")
)

func (k Kind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindNumericDegeneracy:
		return ErrNumericDegeneracy
	case KindOutputConflict:
		return ErrOutputConflict
	default:
		return nil
	}
}

// Error is a classified pipeline error.
type Error struct {
	Kind    Kind
	Band    string
	Op      string
	Message string
	Err     error
}

// Error formats the error as "[kind] band: op: message: cause".
func (e *Error) Error() string {
	if e == nil {
		return "pipeline error <nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", e.Kind)
	if e.Band != "" {
		fmt.Fprintf(&b, " band %s:", e.Band)
	}
	if e.Op != "" {
		fmt.Fprintf(&b, " %s:", e.Op)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, " %s", e.Message)
	}
	if e.Err != nil {
		if e.Message != "" {
			b.WriteString(":")
		}
		fmt.Fprintf(&b, " %v", e.Err)
	}
	return strings.TrimSuffix(b.String(), ":")
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Configurationf builds a configuration error.
func Configurationf(op, format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NumericDegeneracyf builds a numeric degeneracy error.
func NumericDegeneracyf(op, format string, args ...any) *Error {
	return &Error{Kind: KindNumericDegeneracy, Op: op, Message: fmt.Sprintf(format, args...)}
}

// OutputConflict builds an output conflict error for path.
func OutputConflict(path string) *Error {
	return &Error{
		Kind:    KindOutputConflict,
		Op:      "write",
		Message: fmt.Sprintf("%s already exists and overwrite is not set", path),
	}
}

// Wrap classifies an existing error.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// WithBand attaches a band identifier to err. Classified errors gain the
// band in place of a copy; anything else is returned wrapped with the band
// in its message.
func WithBand(err error, band string) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) && pe.Band == "" {
		cp := *pe
		cp.Band = band
		return &cp
	}
	return fmt.Errorf("band %s: %w", band, err)
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}
