package mortgage

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrRange            = errors.New("invalid term range")
	ErrNumericDomain    = errors.New("numeric domain error")
)

// Error is the structured failure returned by the engine. Kind is one of the
// sentinel errors above; Field and Value name the offending input.
type Error struct {
	Kind   error
	Field  string
	Value  float64
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s=%g: %s", e.Kind, e.Field, e.Value, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// KindName returns the taxonomy name of err (InvalidParameter, RangeError or
// NumericDomainError), or an empty string for errors not produced here.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrInvalidParameter):
		return "InvalidParameter"
	case errors.Is(err, ErrRange):
		return "RangeError"
	case errors.Is(err, ErrNumericDomain):
		return "NumericDomainError"
	}
	return ""
}

// FieldOf returns the offending field recorded in err, if any.
func FieldOf(err error) string {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Field
	}
	return ""
}

func invalidParameter(field string, value float64, reason string) error {
	return &Error{Kind: ErrInvalidParameter, Field: field, Value: value, Reason: reason}
}

func rangeError(field string, value float64, reason string) error {
	return &Error{Kind: ErrRange, Field: field, Value: value, Reason: reason}
}

func numericDomain(field string, value float64, reason string) error {
	return &Error{Kind: ErrNumericDomain, Field: field, Value: value, Reason: reason}
}
