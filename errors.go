package dico

import (
	"errors"
	"fmt"
)

// UnknownFieldError reports a construction key or setter name that matches
// neither a declared field nor an alias of the target schema. It is the one
// immediate-failure path in the package: every other mismatch is deferred to
// validation.
type UnknownFieldError struct {
	Schema string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("dico: unknown field %q on schema %q", e.Field, e.Schema)
}

// ValidationError is returned by the save projection when the document does
// not pass full validation. Validate and ValidatePartial never return it;
// they report plain booleans.
type ValidationError struct {
	Schema string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dico: document of schema %q failed validation", e.Schema)
}

// SchemaError reports an invalid declaration (duplicate field, colliding
// alias, unknown visibility name, bad pattern). It is only ever produced at
// schema-declaration time, before any Document exists.
type SchemaError struct {
	Schema string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dico: schema %q: %s", e.Schema, e.Reason)
}

// IsUnknownField reports whether err is (or wraps) an UnknownFieldError.
func IsUnknownField(err error) bool {
	var ue *UnknownFieldError
	return errors.As(err, &ue)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
