package schema

import (
	"errors"
	"fmt"
)

// Schema error codes (S100-S199).
const (
	ErrMalformedSchema  = "S100" // schema document is not an op sequence
	ErrMissingField     = "S101" // required record field absent
	ErrInvalidField     = "S102" // field present with wrong type or value
	ErrUnknownField     = "S103" // record key not in the op schema
	ErrDuplicateOp      = "S104" // op name declared twice
	ErrInvalidResult    = "S105" // result pseudo-argument misuse
	ErrPreprocessor     = "S106" // unbalanced or malformed directive
	ErrUndefinedVar     = "S107" // @NAME@ substitution with no flag value
)

// SchemaError represents a malformed schema: a bad record, a duplicate op
// name, or a preprocessor failure. All schema errors are fatal; the run
// aborts before any output is written.
type SchemaError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// UnknownArgTypeError reports an op argument whose type tag has no entry
// in the type registry. Raised during load, before any per-op generation
// runs.
type UnknownArgTypeError struct {
	Op   string `json:"op"`
	Arg  string `json:"arg"`
	Type string `json:"type"`
	Line int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e *UnknownArgTypeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: op %s: argument %q has unknown type %q",
			e.Line, e.Op, e.Arg, e.Type)
	}
	return fmt.Sprintf("op %s: argument %q has unknown type %q", e.Op, e.Arg, e.Type)
}

// IsSchemaError reports whether err is a SchemaError.
// Uses errors.As to handle wrapped errors.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsUnknownArgType reports whether err is an UnknownArgTypeError.
// Uses errors.As to handle wrapped errors.
func IsUnknownArgType(err error) bool {
	var ue *UnknownArgTypeError
	return errors.As(err, &ue)
}
