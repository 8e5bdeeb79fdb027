package authapimodels

import (
	"context"
	apimodels "recruit-portal/models/api"
	"strings"
)

// PasswordMessages общие тексты ошибок для форм смены пароля
var PasswordMessages = map[string]string{
	"Email.portal_email":         "Please enter a valid email address",
	"TemporaryPassword.notblank": "Please enter the temporary password from your email",
	"CurrentPassword.notblank":   "Current password is required",
	"NewPassword.min":            "New password must be at least 6 characters long",
	"ConfirmPassword.eqfield":    "New passwords do not match",
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"portal_email"` // почта, на которую придет временный пароль
}

func (r ForgotPasswordRequest) Validate() error {
	return apimodels.ValidateForm(context.Background(), r, PasswordMessages)
}

type ChangeTemporaryPasswordRequest struct {
	Email             string `json:"email" validate:"portal_email"`
	TemporaryPassword string `json:"temporaryPassword" validate:"notblank"`
	NewPassword       string `json:"newPassword" validate:"min=6"`
	ConfirmPassword   string `json:"confirmPassword,omitempty" validate:"eqfield=NewPassword"`
}

func (r ChangeTemporaryPasswordRequest) Validate() error {
	return apimodels.ValidateForm(context.Background(), r, PasswordMessages)
}

// ToBackend тело запроса без подтверждения пароля
func (r ChangeTemporaryPasswordRequest) ToBackend() ChangeTemporaryPasswordRequest {
	return ChangeTemporaryPasswordRequest{
		Email:             strings.TrimSpace(r.Email),
		TemporaryPassword: strings.TrimSpace(r.TemporaryPassword),
		NewPassword:       r.NewPassword,
	}
}

type BackendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
