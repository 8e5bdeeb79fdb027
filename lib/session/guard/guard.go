package sessionguard

import (
	"context"
	"encoding/json"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"recruit-portal/lib/metrics"
	sessionstore "recruit-portal/lib/session/store"
	authapimodels "recruit-portal/models/api/auth"
	"time"
)

type Reason string

const (
	ReasonOK             Reason = "ok"
	ReasonMissing        Reason = "missing_credentials"
	ReasonExpired        Reason = "token_expired"
	ReasonMalformedUser  Reason = "malformed_user"
	ReasonRoleMismatch   Reason = "role_mismatch"
	ReasonInactive       Reason = "inactive"
	ReasonRemoteRejected Reason = "remote_rejected"
	ReasonStoreError     Reason = "store_error"
)

type Result struct {
	Authenticated bool
	Reason        Reason
	User          *authapimodels.SessionUser
}

func (r Result) View() authapimodels.SessionView {
	view := authapimodels.SessionView{
		Authenticated: r.Authenticated,
		User:          r.User,
	}
	if !r.Authenticated {
		view.Reason = string(r.Reason)
	}
	return view
}

// TokenValidator необязательная проверка токена на бэкенде
type TokenValidator interface {
	ValidateToken(ctx context.Context, accessToken string) error
}

type Provider interface {
	Evaluate(ctx context.Context, cache *sessionstore.Cache) Result
	Logout(cache *sessionstore.Cache)
}

var Instance Provider

func NewHandler(validator TokenValidator, validateRemote bool) {
	Instance = New(validator, validateRemote, time.Now)
}

func New(validator TokenValidator, validateRemote bool, now func() time.Time) Provider {
	if now == nil {
		now = time.Now
	}
	return &impl{
		validator:      validator,
		validateRemote: validateRemote && validator != nil,
		now:            now,
	}
}

type impl struct {
	validator      TokenValidator
	validateRemote bool
	now            func() time.Time
}

func (i impl) Evaluate(ctx context.Context, cache *sessionstore.Cache) Result {
	logger := log.WithField("client_id", cache.ClientID())
	creds, err := cache.Credentials()
	if err != nil {
		logger.WithError(err).Error("ошибка чтения кэша сессии")
		return i.deny(ReasonStoreError, nil)
	}
	if !creds.Complete() {
		return i.deny(ReasonMissing, nil)
	}

	if TokenExpired(creds.AccessToken, i.now()) {
		i.purge(logger, cache)
		return i.deny(ReasonExpired, nil)
	}

	user := authapimodels.SessionUser{}
	if err = json.Unmarshal([]byte(creds.User), &user); err != nil {
		logger.WithError(err).Warn("данные пользователя в кэше повреждены")
		i.purge(logger, cache)
		return i.deny(ReasonMalformedUser, nil)
	}

	// роль не связана с учетными данными, кэш не трогаем
	if !user.Role.IsPortalAdmin() {
		return i.deny(ReasonRoleMismatch, &user)
	}

	if !user.IsActive() {
		logger.WithField("status", user.Status).Info("пользователь деактивирован, сессия очищена")
		i.purge(logger, cache)
		return i.deny(ReasonInactive, &user)
	}

	if i.validateRemote {
		if err = i.validator.ValidateToken(ctx, creds.AccessToken); err != nil {
			logger.WithError(err).Warn("бэкенд не подтвердил токен")
			return i.deny(ReasonRemoteRejected, &user)
		}
	}

	metrics.SessionGuardTotal.WithLabelValues("allowed", string(ReasonOK)).Inc()
	return Result{
		Authenticated: true,
		Reason:        ReasonOK,
		User:          &user,
	}
}

func (i impl) Logout(cache *sessionstore.Cache) {
	i.purge(log.WithField("client_id", cache.ClientID()), cache)
}

func (i impl) deny(reason Reason, user *authapimodels.SessionUser) Result {
	metrics.SessionGuardTotal.WithLabelValues("denied", string(reason)).Inc()
	return Result{
		Authenticated: false,
		Reason:        reason,
		User:          user,
	}
}

func (i impl) purge(logger *log.Entry, cache *sessionstore.Cache) {
	if err := cache.PurgeCredentials(); err != nil {
		logger.WithError(err).Error("ошибка очистки кэша сессии")
	}
}

// TokenExpired подпись не проверяется: ключа у портала нет.
// Нечитаемый токен и токен без exp считаются просроченными.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Time.Before(now)
}
