package apimodels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email" validate:"portal_email"`
	Password string `json:"password" validate:"notblank,min=6"`
	Confirm  string `json:"confirm,omitempty" validate:"eqfield=Password"`
}

func TestValidateForm(t *testing.T) {
	messages := map[string]string{
		"Email.portal_email": "Bad email",
		"Password.notblank":  "Password is required",
		"Confirm.eqfield":    "Passwords do not match",
	}

	t.Run(`valid form check`, func(t *testing.T) {
		err := ValidateForm(context.TODO(), signupForm{Email: "a@b.co", Password: "123456", Confirm: "123456"}, messages)
		require.Nil(t, err)
	})

	t.Run(`errors keyed by json name check`, func(t *testing.T) {
		err := ValidateForm(context.TODO(), signupForm{Email: "a@b", Password: "123456", Confirm: "1234567"}, messages)
		var formErrors FormErrors
		require.ErrorAs(t, err, &formErrors)
		require.Equal(t, FormErrors{"email": "Bad email", "confirm": "Passwords do not match"}, formErrors)
		require.EqualError(t, err, "Passwords do not match; Bad email")
	})

	t.Run(`first error per field check`, func(t *testing.T) {
		err := ValidateForm(context.TODO(), signupForm{Email: "a@b.co", Password: " "}, messages)
		var formErrors FormErrors
		require.ErrorAs(t, err, &formErrors)
		require.Equal(t, "Password is required", formErrors["password"])
	})

	t.Run(`default message check`, func(t *testing.T) {
		err := ValidateForm(context.TODO(), signupForm{Email: "a@b.co", Password: "12345", Confirm: "12345"}, messages)
		require.EqualError(t, err, "password is invalid")
	})

	t.Run(`email format check`, func(t *testing.T) {
		require.True(t, IsEmail(" jane@example.com "))
		require.False(t, IsEmail("jane@example"))
		require.False(t, IsEmail("jane doe@example.com"))
	})
}
