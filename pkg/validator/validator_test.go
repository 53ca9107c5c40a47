package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string `json:"name" validate:"required,notblank,max=5"`
	Email   string `json:"email" validate:"required,email"`
	Website string `json:"websiteUrl" validate:"omitempty,url,startswith=https://"`
}

func TestValidate_OK(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(sample{Name: "abc", Email: "a@b.co", Website: "https://x.io"}))
}

func TestValidate_FieldErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sample{Name: "   ", Email: "nope", Website: "http://x.io"})
	require.Error(t, err)

	var fieldErrs ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))

	fields := map[string]string{}
	for _, fe := range fieldErrs {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Equal(t, "websiteUrl must be a valid https URL", fields["websiteUrl"])
}

func TestValidate_OneMessagePerField(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sample{Name: "toolongname", Email: "a@b.co"})
	var fieldErrs ValidationErrors
	require.True(t, errors.As(err, &fieldErrs))
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "name", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Message, "at most 5")
}

func TestValidate_Login(t *testing.T) {
	type req struct {
		Login string `json:"login" validate:"required,min=3,max=10,login"`
	}
	v := NewValidator()

	assert.NoError(t, v.Validate(req{Login: "bob_1-x"}))

	var fieldErrs ValidationErrors
	require.True(t, errors.As(v.Validate(req{Login: "bob!"}), &fieldErrs))
	assert.Equal(t, "login contains invalid characters", fieldErrs[0].Message)
}
