package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is returned by Parse when input data violates the schema.
// It carries every violation found, not just the first.
type ValidationError struct {
	Type   string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema %s: %d validation error(s)", e.Type, len(e.Errors))
	for _, fe := range e.Errors {
		b.WriteString("; ")
		b.WriteString(fe.String())
	}
	return b.String()
}

// AsValidationError unwraps err into a *ValidationError if possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
