package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestValidationDetails(t *testing.T) {
	type form struct {
		Name     string `validate:"required"`
		Email    string `validate:"omitempty,email"`
		Quantity int    `validate:"gte=1"`
	}

	validate := validator.New()
	err := validate.Struct(form{Email: "not-an-email"})
	assert.Error(t, err)

	details := ValidationDetails(err)
	assert.Len(t, details, 3)

	byField := make(map[string]FieldError)
	for _, d := range details {
		byField[d.Field] = d
	}

	assert.Equal(t, "required", byField["Name"].Rule)
	assert.Equal(t, "email", byField["Email"].Rule)
	assert.Equal(t, "gte", byField["Quantity"].Rule)
	assert.Equal(t, "1", byField["Quantity"].Param)
}

func TestValidationDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("unexpected EOF")))
}
