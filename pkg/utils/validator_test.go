package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	PizzaSize string `json:"pizza_size" validate:"omitempty,oneof=SMALL LARGE"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(sample{Quantity: 1}))
	assert.Nil(t, ValidateStruct(sample{Quantity: 1, PizzaSize: "LARGE"}))

	errs := ValidateStruct(sample{PizzaSize: "HUGE"})
	assert.Equal(t, map[string]string{
		"quantity":   "This field is required",
		"pizza_size": "Must be one of: SMALL, LARGE",
	}, errs)

	assert.Equal(t,
		"pizza_size: Must be one of: SMALL, LARGE; quantity: This field is required",
		FormatValidationErrors(errs),
	)
}

type bounds struct {
	PerPage int    `json:"per_page" validate:"min=1,max=100"`
	Name    string `json:"name" validate:"min=3,max=5"`
}

func TestValidateStruct_Bounds(t *testing.T) {
	assert.Equal(t, map[string]string{
		"per_page": "Must be at most 100",
		"name":     "Maximum length is 5",
	}, ValidateStruct(bounds{PerPage: 500, Name: "toolong"}))

	assert.Equal(t, map[string]string{
		"per_page": "Must be at least 1",
		"name":     "Minimum length is 3",
	}, ValidateStruct(bounds{PerPage: -1, Name: "ab"}))
}

func TestParseID(t *testing.T) {
	for in, want := range map[string]bool{"1": true, "42": true, "0": false, "-3": false, "abc": false, "": false} {
		_, ok := ParseID(in)
		assert.Equal(t, want, ok, in)
	}
}
