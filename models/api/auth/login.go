package authapimodels

import (
	"bytes"
	"context"
	"encoding/json"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"portal_email"`
	Password string `json:"password" validate:"notblank"`
}

var loginMessages = map[string]string{
	"Email.portal_email": "Please enter a valid email address",
	"Password.notblank":  "Password is required",
}

func (r LoginRequest) Validate() error {
	return apimodels.ValidateForm(context.Background(), r, loginMessages)
}

// LoginResponse ответ бэкенда на вход: либо токен с пользователем, либо описание ошибки
type LoginResponse struct {
	AccessToken     string          `json:"access_token"`
	User            json.RawMessage `json:"user"`
	Error           json.RawMessage `json:"error,omitempty"`
	Message         string          `json:"message,omitempty"`
	SuperAdminEmail string          `json:"superAdminEmail,omitempty"`
}

// IsError бэкенд может вернуть 200 с признаком ошибки в теле
func (r LoginResponse) IsError() bool {
	v := bytes.TrimSpace(r.Error)
	switch string(v) {
	case "", "null", "false", `""`, "0":
		return false
	}
	return true
}

// ErrorMessage текст ошибки из тела ответа
func (r LoginResponse) ErrorMessage() string {
	if r.Message != "" {
		return r.Message
	}
	var s string
	if err := json.Unmarshal(r.Error, &s); err == nil {
		return s
	}
	return ""
}

// SessionUser поля пользователя, по которым портал принимает решения
type SessionUser struct {
	ID     apimodels.ID      `json:"id"`
	Email  string            `json:"email"`
	Role   models.UserRole   `json:"role"`
	Status models.UserStatus `json:"status,omitempty"`
}

func (u SessionUser) HasStatus() bool {
	return u.Status != ""
}

func (u SessionUser) IsActive() bool {
	return u.Status.IsActive()
}

type LoginResult struct {
	User            *SessionUser `json:"user,omitempty"`
	Redirect        string       `json:"redirect,omitempty"`
	SuperAdminEmail string       `json:"superAdminEmail,omitempty"`
}

type SessionView struct {
	Authenticated bool         `json:"authenticated"`
	Reason        string       `json:"reason,omitempty"`
	User          *SessionUser `json:"user,omitempty"`
}
