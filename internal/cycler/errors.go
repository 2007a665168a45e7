package cycler

import (
	"errors"
	"fmt"
)

// ErrNoTexts is matched by the ConfigurationError returned when a cycler is
// built (or re-seeded) with an empty list.
var ErrNoTexts = errors.New("texts must not be empty")

// ConfigurationError reports an invalid construction parameter. It is only
// ever returned by New, SetTexts and the Parse helpers; navigation never fails.
type ConfigurationError struct {
	Field  string
	Reason string
	err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cycler: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap exposes the sentinel, if any.
func (e *ConfigurationError) Unwrap() error {
	return e.err
}

func configErr(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}
