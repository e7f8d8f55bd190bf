package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required,not-blank,max=10"`
	Slug     string  `json:"slug" validate:"omitempty,slug"`
	TIN      *string `json:"tin,omitempty" validate:"omitempty,tin"`
	Biz      string  `json:"biz" validate:"omitempty,is-business-type"`
	Internal string  `json:"-" validate:"omitempty,max=1"`
}

type serverSection struct {
	Env string `yaml:"env" validate:"oneof=development production"`
}

type fileConfig struct {
	Server serverSection `yaml:"server"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	tin := "123-456"

	err := v.Validate(&signupForm{
		Email: "user@example.com",
		Name:  "Jane",
		Slug:  "web-dev-2",
		TIN:   &tin,
		Biz:   "Corporate",
	})

	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := New()
	tin := "!!"

	err := v.Validate(&signupForm{
		Email: "not-an-email",
		Name:  "   ",
		Slug:  "Web Dev",
		TIN:   &tin,
		Biz:   "Partnership",
	})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must not be blank", vErr.Errors["name"])
	assert.Equal(t, "Must contain only lowercase letters, digits and hyphens", vErr.Errors["slug"])
	assert.Equal(t, "Must be 3-20 characters of letters, digits and hyphens", vErr.Errors["tin"])
	assert.Equal(t, "Must be one of: Individual, Corporate", vErr.Errors["biz"])
	assert.Len(t, vErr.Errors, 5)
}

func TestValidate_MaxAndRequiredMessages(t *testing.T) {
	v := New()

	err := v.Validate(&signupForm{Name: "much-too-long-name"})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "This field is required", vErr.Errors["email"])
	assert.Equal(t, "Must be at most 10 items/characters long", vErr.Errors["name"])
}

func TestValidate_NestedYAMLNames(t *testing.T) {
	v := New()

	err := v.Validate(&fileConfig{Server: serverSection{Env: "staging"}})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Must be one of: development, production", vErr.Errors["server.env"])
}

func TestValidationError_StableMessage(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{
		"b": "second",
		"a": "first",
	}}

	assert.Equal(t, "Validation failed: field 'a': first; field 'b': second", err.Error())
}

func TestValidateVar(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateVar("web-dev", "slug"))
	assert.Error(t, v.ValidateVar("Web Dev", "slug"))
}
