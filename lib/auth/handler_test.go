package authhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"recruit-portal/lib/backend/client"
	sessionstore "recruit-portal/lib/session/store"
	"recruit-portal/models"
	authapimodels "recruit-portal/models/api/auth"
)

type fakeBackend struct {
	login      *authapimodels.LoginResponse
	loginErr   error
	loginCalls int
	changed    []authapimodels.ChangeTemporaryPasswordRequest
	result     *authapimodels.BackendResult
}

func (f *fakeBackend) Login(ctx context.Context, request authapimodels.LoginRequest) (*authapimodels.LoginResponse, error) {
	f.loginCalls++
	return f.login, f.loginErr
}

func (f *fakeBackend) ForgotPassword(ctx context.Context, request authapimodels.ForgotPasswordRequest) (*authapimodels.BackendResult, error) {
	return f.result, nil
}

func (f *fakeBackend) ChangeTemporaryPassword(ctx context.Context, request authapimodels.ChangeTemporaryPasswordRequest) (*authapimodels.BackendResult, error) {
	f.changed = append(f.changed, request)
	return f.result, nil
}

type purgeTerminator struct {
	calls int
}

func (p *purgeTerminator) Logout(cache *sessionstore.Cache) {
	p.calls++
	_ = cache.PurgeCredentials()
}

type recordingTimers struct {
	canceled []string
}

func (r *recordingTimers) Cancel(clientID string) {
	r.canceled = append(r.canceled, clientID)
}

func newCache() *sessionstore.Cache {
	return sessionstore.NewCache(sessionstore.NewMemoryInstance(), "c1")
}

func validLogin() authapimodels.LoginRequest {
	return authapimodels.LoginRequest{Email: "admin@example.com", Password: "secret"}
}

func TestLogin(t *testing.T) {
	t.Run(`admin login caches credentials check`, func(t *testing.T) {
		backend := &fakeBackend{login: &authapimodels.LoginResponse{
			AccessToken: "jwt",
			User:        json.RawMessage(`{"id":1,"email":"admin@example.com","role":"super_admin","status":"Active"}`),
		}}
		cache := newCache()
		result, err := New(backend, &purgeTerminator{}, nil, "/jobs").Login(context.TODO(), cache, validLogin())
		require.Nil(t, err)
		require.Equal(t, "/admin/dashboard", result.Redirect)
		require.Equal(t, models.UserRoleSuperAdmin, result.User.Role)

		creds, err := cache.Credentials()
		require.Nil(t, err)
		require.True(t, creds.Complete())
		require.Equal(t, "jwt", creds.AccessToken)
		require.JSONEq(t, `{"id":1,"email":"admin@example.com","role":"super_admin","status":"Active"}`, creds.User)
	})

	t.Run(`non admin role is rejected without caching check`, func(t *testing.T) {
		backend := &fakeBackend{login: &authapimodels.LoginResponse{
			AccessToken: "jwt",
			User:        json.RawMessage(`{"id":2,"email":"user@example.com","role":"user"}`),
		}}
		cache := newCache()
		_, err := New(backend, &purgeTerminator{}, nil, "/jobs").Login(context.TODO(), cache, validLogin())
		require.Equal(t, NotAdminMessage, client.UserMessage(err, ""))
		require.Equal(t, http.StatusForbidden, client.StatusCode(err))
		creds, _ := cache.Credentials()
		require.Empty(t, creds.AccessToken)
	})

	t.Run(`error body passes message and super admin email check`, func(t *testing.T) {
		backend := &fakeBackend{login: &authapimodels.LoginResponse{
			Error:           json.RawMessage(`true`),
			Message:         "Your account is inactive",
			SuperAdminEmail: "root@example.com",
		}}
		_, err := New(backend, &purgeTerminator{}, nil, "/jobs").Login(context.TODO(), newCache(), validLogin())
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "Your account is inactive", apiErr.Message)
		require.Equal(t, "root@example.com", apiErr.SuperAdminEmail)
	})

	t.Run(`transport and server failures check`, func(t *testing.T) {
		backend := &fakeBackend{loginErr: client.ErrNoResponse}
		handler := New(backend, &purgeTerminator{}, nil, "/jobs")
		_, err := handler.Login(context.TODO(), newCache(), validLogin())
		require.Equal(t, client.NoResponseMessage, client.UserMessage(err, ""))

		backend.loginErr = &client.APIError{StatusCode: http.StatusUnauthorized}
		_, err = handler.Login(context.TODO(), newCache(), validLogin())
		require.Equal(t, LoginFailedMessage, client.UserMessage(err, ""))
		require.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
	})

	t.Run(`validation before request check`, func(t *testing.T) {
		backend := &fakeBackend{}
		handler := New(backend, &purgeTerminator{}, nil, "/jobs")
		_, err := handler.Login(context.TODO(), newCache(), authapimodels.LoginRequest{Email: "nope", Password: "x"})
		require.EqualError(t, err, "Please enter a valid email address")
		_, err = handler.Login(context.TODO(), newCache(), authapimodels.LoginRequest{Email: "a@b.co"})
		require.EqualError(t, err, "Password is required")
		require.Equal(t, 0, backend.loginCalls)
	})
}

func TestPasswords(t *testing.T) {
	t.Run(`change temporary password check`, func(t *testing.T) {
		backend := &fakeBackend{result: &authapimodels.BackendResult{Success: true}}
		handler := New(backend, &purgeTerminator{}, nil, "/jobs")
		_, err := handler.ChangeTemporaryPassword(context.TODO(), authapimodels.ChangeTemporaryPasswordRequest{
			Email: "a@b.co", NewPassword: "123456", ConfirmPassword: "123456",
		})
		require.EqualError(t, err, "Please enter the temporary password from your email")

		message, err := handler.ChangeTemporaryPassword(context.TODO(), authapimodels.ChangeTemporaryPasswordRequest{
			Email: "a@b.co", TemporaryPassword: "tmp", NewPassword: "123456", ConfirmPassword: "123456",
		})
		require.Nil(t, err)
		require.Equal(t, PasswordChangedMessage, message)
		require.Len(t, backend.changed, 1)
		require.Empty(t, backend.changed[0].ConfirmPassword)

		backend.result = &authapimodels.BackendResult{Success: false}
		_, err = handler.ChangeTemporaryPassword(context.TODO(), authapimodels.ChangeTemporaryPasswordRequest{
			Email: "a@b.co", TemporaryPassword: "tmp", NewPassword: "123456", ConfirmPassword: "123456",
		})
		require.Equal(t, ChangeFailedMessage, client.UserMessage(err, ""))
	})

	t.Run(`forgot password check`, func(t *testing.T) {
		backend := &fakeBackend{result: &authapimodels.BackendResult{Success: true, Message: "Temporary password sent"}}
		handler := New(backend, &purgeTerminator{}, nil, "/jobs")
		message, err := handler.ForgotPassword(context.TODO(), authapimodels.ForgotPasswordRequest{Email: "a@b.co"})
		require.Nil(t, err)
		require.Equal(t, "Temporary password sent", message)
		_, err = handler.ForgotPassword(context.TODO(), authapimodels.ForgotPasswordRequest{Email: "a@b"})
		require.EqualError(t, err, "Please enter a valid email address")
	})
}

func TestLogout(t *testing.T) {
	t.Run(`logout is idempotent and cancels timer check`, func(t *testing.T) {
		cache := newCache()
		require.Nil(t, cache.SaveCredentials("jwt", `{"role":"admin"}`))
		terminator := &purgeTerminator{}
		timers := &recordingTimers{}
		handler := New(&fakeBackend{}, terminator, timers, "/jobs")
		require.Equal(t, "/jobs", handler.Logout(cache))
		require.Equal(t, "/jobs", handler.Logout(cache))
		creds, _ := cache.Credentials()
		require.Equal(t, sessionstore.Credentials{}, creds)
		require.Equal(t, []string{"c1", "c1"}, timers.canceled)
		require.Equal(t, 2, terminator.calls)
	})
}
