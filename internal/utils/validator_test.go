// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email        string `validate:"required,email"`
	Category     string `validate:"required,category"`
	FunctionType string `validate:"omitempty,function_type"`
}

func TestValidateStructAcceptsKnownEnums(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Email:        "admin@rishvigems.com",
		Category:     "bridal collection",
		FunctionType: "kovil",
	})
	assert.NoError(t, err)
}

func TestValidateStructRejectsUnknownCategory(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Email:    "admin@rishvigems.com",
		Category: "tiaras",
	})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].Tag)
	assert.Equal(t, "Unknown category", errs[0].Message)
}

func TestValidateStructRejectsUnknownFunctionType(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Email:        "admin@rishvigems.com",
		Category:     "necklace",
		FunctionType: "housewarming",
	})
	assert.Error(t, err)
}

func TestGetValidationErrorsCollectsFields(t *testing.T) {
	err := ValidateStruct(&sampleRequest{})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 2)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
}

func TestGenerateRandomString(t *testing.T) {
	a, err := GenerateRandomString(12)
	assert.NoError(t, err)
	assert.Len(t, a, 12)

	b, err := GenerateRandomString(12)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
