package finsec

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ValidationError and SerializationError. Test them with errors.Is.
var (
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrCyclicUnderlier     = errors.New("cyclic underlier")
	ErrSettlementConflict  = errors.New("settlement type conflicts with underlier")
	ErrUnknownSecurityType = errors.New("unknown security type")
	ErrUnknownField        = errors.New("unknown field")
	ErrCatalogConflict     = errors.New("conflicting catalog entry")
)

// ValidationError reports a missing, malformed or conflicting field at construction.
type ValidationError struct {
	Field string // Field is the parameter name, in its serialized form (e.g. "expiry_date").
	Msg   string
	Err   error // Err is the underlying cause, often one of the package sentinels.
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Msg
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// invalid returns a ValidationError on field.
func invalid(field string, cause error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// missing returns a ValidationError for a required field left empty.
func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Msg: "is required", Err: ErrMissingField}
}

// SerializationError reports a structured form that cannot be decoded into a security.
type SerializationError struct {
	Path string // Path locates the offending value, e.g. "$.underlying_security.security_type".
	Msg  string
	Err  error
}

func (e *SerializationError) Error() string {
	msg := "serialization error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	msg += ": " + e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SerializationError) Unwrap() error { return e.Err }
