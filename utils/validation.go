package utils

import (
	"github.com/go-playground/validator/v10"
)

// FieldError describes a single field-level validation failure
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationDetails converts a gin binding error into per-field details.
// Returns nil for errors that are not validator.ValidationErrors (e.g.
// malformed JSON), where only the top-level message applies.
func ValidationDetails(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return details
}
