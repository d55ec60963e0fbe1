package utils_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gema-proficiency-api/internal/utils"
)

func TestNewValidatorUsesJSONNames(t *testing.T) {
	payload := struct {
		TotalMarks float64 `json:"total_marks" validate:"required,gt=0"`
	}{}

	err := utils.NewValidator().Struct(payload)
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Equal(t, "total_marks", validationErrors[0].Field())
}
