package adminshandler

import (
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"recruit-portal/lib/backend/client"
	sessionstore "recruit-portal/lib/session/store"
	"recruit-portal/models"
	adminapimodels "recruit-portal/models/api/admin"
)

const (
	PasswordChangedMessage   = "Password changed successfully"
	PasswordIncorrectMessage = "Please enter the correct current password"
	PasswordUpdateFailed     = "Failed to update password. Please try again."
	EmailUpdatedMessage      = "Email updated successfully"
	EmailUpdateFailed        = "Failed to update profile. Please try again."
	AdminsFailedMessage      = "Failed to fetch admins"
	AdminAddFailed           = "Failed to add admin"
	AdminToggleFailed        = "Failed to update admin status"
	AdminRemoveFailed        = "Failed to remove admin"
)

type Backend interface {
	ListAdmins(ctx context.Context, accessToken string) ([]adminapimodels.Admin, error)
	AddAdmin(ctx context.Context, accessToken string, request adminapimodels.AddAdminRequest) (*adminapimodels.MessageResponse, error)
	ToggleAdminStatus(ctx context.Context, accessToken, adminID string, request adminapimodels.ToggleStatusRequest) error
	RemoveAdmin(ctx context.Context, accessToken, adminID string) error
	TestPassword(ctx context.Context, accessToken string, request adminapimodels.TestPasswordRequest) (*adminapimodels.TestPasswordResponse, error)
	UpdatePassword(ctx context.Context, accessToken string, request adminapimodels.UpdatePasswordRequest) (*adminapimodels.MessageResponse, error)
	UpdateEmail(ctx context.Context, accessToken string, request adminapimodels.UpdateEmailRequest) (*adminapimodels.MessageResponse, error)
}

type Provider interface {
	List(ctx context.Context, accessToken string) ([]adminapimodels.Admin, error)
	Add(ctx context.Context, accessToken string, request adminapimodels.AddAdminRequest) (string, error)
	// ToggleStatus переводит администратора в противоположный статус
	ToggleStatus(ctx context.Context, accessToken, adminID string, current models.UserStatus) (models.UserStatus, error)
	Remove(ctx context.Context, accessToken, adminID string) error
	TestPassword(ctx context.Context, accessToken string, request adminapimodels.TestPasswordRequest) (bool, error)
	UpdatePassword(ctx context.Context, accessToken string, request adminapimodels.UpdatePasswordRequest) (string, error)
	// UpdateEmail после успешного ответа переписывает email в кэше пользователя
	UpdateEmail(ctx context.Context, cache *sessionstore.Cache, request adminapimodels.UpdateEmailRequest) (string, error)
}

var Instance Provider

func NewHandler(backend Backend) {
	Instance = New(backend)
}

func New(backend Backend) Provider {
	return impl{
		backend: backend,
	}
}

type impl struct {
	backend Backend
}

func (i impl) List(ctx context.Context, accessToken string) ([]adminapimodels.Admin, error) {
	return i.backend.ListAdmins(ctx, accessToken)
}

func (i impl) Add(ctx context.Context, accessToken string, request adminapimodels.AddAdminRequest) (string, error) {
	if request.Role == "" {
		request.Role = models.UserRoleAdmin
	}
	if err := request.Validate(); err != nil {
		return "", err
	}
	resp, err := i.backend.AddAdmin(ctx, accessToken, request)
	if err != nil {
		log.WithField("email", request.Email).WithError(err).Error("ошибка добавления администратора")
		return "", err
	}
	return resp.Message, nil
}

func (i impl) ToggleStatus(ctx context.Context, accessToken, adminID string, current models.UserStatus) (models.UserStatus, error) {
	next := adminapimodels.NextStatus(current)
	err := i.backend.ToggleAdminStatus(ctx, accessToken, adminID, adminapimodels.ToggleStatusRequest{Status: next})
	if err != nil {
		log.WithField("admin_id", adminID).WithError(err).Error("ошибка смены статуса администратора")
		return current, err
	}
	return next, nil
}

func (i impl) Remove(ctx context.Context, accessToken, adminID string) error {
	err := i.backend.RemoveAdmin(ctx, accessToken, adminID)
	if err != nil {
		log.WithField("admin_id", adminID).WithError(err).Error("ошибка удаления администратора")
	}
	return err
}

func (i impl) TestPassword(ctx context.Context, accessToken string, request adminapimodels.TestPasswordRequest) (bool, error) {
	if err := request.Validate(); err != nil {
		return false, err
	}
	resp, err := i.backend.TestPassword(ctx, accessToken, request)
	if err != nil {
		return false, err
	}
	return resp.PasswordValid, nil
}

func (i impl) UpdatePassword(ctx context.Context, accessToken string, request adminapimodels.UpdatePasswordRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", err
	}
	valid, err := i.TestPassword(ctx, accessToken, adminapimodels.TestPasswordRequest{CurrentPassword: request.ToBackend().CurrentPassword})
	if err != nil {
		return "", err
	}
	if !valid {
		return "", &client.APIError{StatusCode: http.StatusBadRequest, Message: PasswordIncorrectMessage}
	}
	resp, err := i.backend.UpdatePassword(ctx, accessToken, request.ToBackend())
	if err != nil {
		log.WithError(err).Error("ошибка смены пароля администратора")
		return "", err
	}
	if resp.Message != "" {
		return resp.Message, nil
	}
	return PasswordChangedMessage, nil
}

func (i impl) UpdateEmail(ctx context.Context, cache *sessionstore.Cache, request adminapimodels.UpdateEmailRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", err
	}
	resp, err := i.backend.UpdateEmail(ctx, cache.AccessToken(), request)
	if err != nil {
		log.WithField("client_id", cache.ClientID()).WithError(err).Error("ошибка смены email администратора")
		return "", err
	}
	if err = rewriteCachedEmail(cache, request.Email); err != nil {
		log.WithField("client_id", cache.ClientID()).WithError(err).Warn("не удалось обновить email в кэше сессии")
	}
	if resp.Message != "" {
		return resp.Message, nil
	}
	return EmailUpdatedMessage, nil
}

// rewriteCachedEmail остальные поля пользователя сохраняются как есть
func rewriteCachedEmail(cache *sessionstore.Cache, email string) error {
	raw, found, err := cache.Get(models.SessionKeyUser)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	user := map[string]interface{}{}
	if err = json.Unmarshal([]byte(raw), &user); err != nil {
		return errors.Wrap(err, "ошибка разбора пользователя из кэша")
	}
	user["email"] = email
	updated, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return cache.Set(models.SessionKeyUser, string(updated))
}
