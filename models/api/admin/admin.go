package adminapimodels

import (
	"context"
	"github.com/go-playground/validator/v10"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	authapimodels "recruit-portal/models/api/auth"
	"strings"
)

type Admin struct {
	ID        apimodels.ID      `json:"id"`
	Email     string            `json:"email"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status,omitempty"`
	CreatedAt string            `json:"createdAt,omitempty"`
}

type AddAdminRequest struct {
	Email string          `json:"email" validate:"portal_email"`
	Role  models.UserRole `json:"role" validate:"portal_role"`
}

var adminMessages = map[string]string{
	"Email.portal_email": "Please enter a valid email address",
	"Role.portal_role":   "Invalid role",
}

func init() {
	apimodels.RegisterRule("portal_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).IsPortalAdmin()
	})
}

func (r AddAdminRequest) Validate() error {
	return apimodels.ValidateForm(context.Background(), r, adminMessages)
}

type ToggleStatusRequest struct {
	Status models.UserStatus `json:"status"`
}

// NextStatus статус, в который переводится администратор при переключении
func NextStatus(current models.UserStatus) models.UserStatus {
	return current.Toggled()
}

type TestPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"notblank"`
}

func (r TestPasswordRequest) Validate() error {
	return apimodels.ValidateForm(context.Background(), r, authapimodels.PasswordMessages)
}

type TestPasswordResponse struct {
	PasswordValid bool `json:"passwordValid"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"notblank"`
	NewPassword     string `json:"newPassword" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword,omitempty" validate:"eqfield=NewPassword"`
}

// Validate пароли проверяются без пробелов по краям, как их отправит ToBackend
func (r UpdatePasswordRequest) Validate() error {
	trimmed := UpdatePasswordRequest{
		CurrentPassword: strings.TrimSpace(r.CurrentPassword),
		NewPassword:     strings.TrimSpace(r.NewPassword),
		ConfirmPassword: strings.TrimSpace(r.ConfirmPassword),
	}
	return apimodels.ValidateForm(context.Background(), trimmed, authapimodels.PasswordMessages)
}

func (r UpdatePasswordRequest) ToBackend() UpdatePasswordRequest {
	return UpdatePasswordRequest{
		CurrentPassword: strings.TrimSpace(r.CurrentPassword),
		NewPassword:     strings.TrimSpace(r.NewPassword),
	}
}

type UpdateEmailRequest struct {
	Email string `json:"email" validate:"portal_email"`
}

func (r UpdateEmailRequest) Validate() error {
	return apimodels.ValidateForm(context.Background(), r, adminMessages)
}

type MessageResponse struct {
	Message string `json:"message,omitempty"`
}
