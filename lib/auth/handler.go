package authhandler

import (
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"recruit-portal/lib/backend/client"
	sessionstore "recruit-portal/lib/session/store"
	authapimodels "recruit-portal/models/api/auth"
)

const (
	NotAdminMessage          = "You are not an admin user."
	LoginFailedMessage       = "Invalid credentials or not an admin"
	ForgotFailedMessage      = "Failed to send temporary password"
	ForgotFailedRetryMessage = "Failed to send temporary password. Please try again."
	ChangeFailedMessage      = "Failed to change password"
	ChangeFailedRetryMessage = "Failed to change password. Please check your temporary password and try again."
	PasswordChangedMessage   = "Password changed successfully! Redirecting to login..."
	adminDashboardRoute      = "/admin/dashboard"
)

type Backend interface {
	Login(ctx context.Context, request authapimodels.LoginRequest) (*authapimodels.LoginResponse, error)
	ForgotPassword(ctx context.Context, request authapimodels.ForgotPasswordRequest) (*authapimodels.BackendResult, error)
	ChangeTemporaryPassword(ctx context.Context, request authapimodels.ChangeTemporaryPasswordRequest) (*authapimodels.BackendResult, error)
}

// SessionTerminator очистка кэша сессии при выходе
type SessionTerminator interface {
	Logout(cache *sessionstore.Cache)
}

// TimerCanceler отмена таймера автовыхода
type TimerCanceler interface {
	Cancel(clientID string)
}

type Provider interface {
	Login(ctx context.Context, cache *sessionstore.Cache, request authapimodels.LoginRequest) (*authapimodels.LoginResult, error)
	ForgotPassword(ctx context.Context, request authapimodels.ForgotPasswordRequest) (string, error)
	ChangeTemporaryPassword(ctx context.Context, request authapimodels.ChangeTemporaryPasswordRequest) (string, error)
	// Logout идемпотентен, возвращает публичный маршрут для перехода
	Logout(cache *sessionstore.Cache) string
}

var Instance Provider

func NewHandler(backend Backend, terminator SessionTerminator, timers TimerCanceler, publicRoute string) {
	Instance = New(backend, terminator, timers, publicRoute)
}

func New(backend Backend, terminator SessionTerminator, timers TimerCanceler, publicRoute string) Provider {
	return impl{
		backend:     backend,
		terminator:  terminator,
		timers:      timers,
		publicRoute: publicRoute,
	}
}

type impl struct {
	backend     Backend
	terminator  SessionTerminator
	timers      TimerCanceler
	publicRoute string
}

func (i impl) Login(ctx context.Context, cache *sessionstore.Cache, request authapimodels.LoginRequest) (*authapimodels.LoginResult, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	logger := log.WithField("client_id", cache.ClientID())
	resp, err := i.backend.Login(ctx, request)
	if err != nil {
		logger.WithError(err).Warn("ошибка входа администратора")
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return nil, &client.APIError{
				StatusCode:      apiErr.StatusCode,
				Message:         client.UserMessage(err, LoginFailedMessage),
				SuperAdminEmail: apiErr.SuperAdminEmail,
			}
		}
		return nil, &client.APIError{StatusCode: http.StatusBadGateway, Message: client.UserMessage(err, LoginFailedMessage)}
	}
	if resp.IsError() {
		message := resp.ErrorMessage()
		if message == "" {
			message = LoginFailedMessage
		}
		return nil, &client.APIError{
			StatusCode:      http.StatusUnauthorized,
			Message:         message,
			SuperAdminEmail: resp.SuperAdminEmail,
		}
	}

	user := authapimodels.SessionUser{}
	if err = json.Unmarshal(resp.User, &user); err != nil || resp.AccessToken == "" {
		logger.WithError(err).Error("некорректный ответ бэкенда на вход")
		return nil, &client.APIError{StatusCode: http.StatusBadGateway, Message: LoginFailedMessage}
	}
	if !user.Role.IsPortalAdmin() {
		logger.WithField("role", user.Role).Warn("вход пользователя без роли администратора")
		return nil, &client.APIError{StatusCode: http.StatusForbidden, Message: NotAdminMessage}
	}
	if err = cache.SaveCredentials(resp.AccessToken, string(resp.User)); err != nil {
		logger.WithError(err).Error("ошибка сохранения сессии")
		return nil, errors.Wrap(err, "ошибка сохранения сессии")
	}
	logger.WithField("user_id", user.ID.String()).Info("администратор вошел в портал")
	return &authapimodels.LoginResult{
		User:     &user,
		Redirect: adminDashboardRoute,
	}, nil
}

func (i impl) ForgotPassword(ctx context.Context, request authapimodels.ForgotPasswordRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", err
	}
	resp, err := i.backend.ForgotPassword(ctx, request)
	if err != nil {
		log.WithError(err).Warn("ошибка запроса временного пароля")
		return "", resultError(err, ForgotFailedRetryMessage)
	}
	if !resp.Success {
		return "", failedResult(resp.Message, ForgotFailedMessage)
	}
	return resp.Message, nil
}

func (i impl) ChangeTemporaryPassword(ctx context.Context, request authapimodels.ChangeTemporaryPasswordRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", err
	}
	resp, err := i.backend.ChangeTemporaryPassword(ctx, request.ToBackend())
	if err != nil {
		log.WithError(err).Warn("ошибка смены временного пароля")
		return "", resultError(err, ChangeFailedRetryMessage)
	}
	if !resp.Success {
		return "", failedResult(resp.Message, ChangeFailedMessage)
	}
	return PasswordChangedMessage, nil
}

func (i impl) Logout(cache *sessionstore.Cache) string {
	if i.timers != nil {
		i.timers.Cancel(cache.ClientID())
	}
	i.terminator.Logout(cache)
	return i.publicRoute
}

func resultError(err error, fallback string) error {
	code := client.StatusCode(err)
	if code == 0 {
		code = http.StatusBadGateway
	}
	return &client.APIError{StatusCode: code, Message: client.UserMessage(err, fallback)}
}

func failedResult(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &client.APIError{StatusCode: http.StatusBadRequest, Message: message}
}
