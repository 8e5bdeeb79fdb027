package apiv1

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	authhandler "recruit-portal/lib/auth"
	"recruit-portal/lib/backend/client"
	sessionguard "recruit-portal/lib/session/guard"
	sessionstore "recruit-portal/lib/session/store"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
	authapimodels "recruit-portal/models/api/auth"
)

type fakeAuthBackend struct {
	login    *authapimodels.LoginResponse
	loginErr error
}

func (f *fakeAuthBackend) Login(ctx context.Context, request authapimodels.LoginRequest) (*authapimodels.LoginResponse, error) {
	return f.login, f.loginErr
}

func (f *fakeAuthBackend) ForgotPassword(ctx context.Context, request authapimodels.ForgotPasswordRequest) (*authapimodels.BackendResult, error) {
	return &authapimodels.BackendResult{Success: true, Message: "Temporary password sent"}, nil
}

func (f *fakeAuthBackend) ChangeTemporaryPassword(ctx context.Context, request authapimodels.ChangeTemporaryPasswordRequest) (*authapimodels.BackendResult, error) {
	return &authapimodels.BackendResult{Success: true}, nil
}

func setupAuthApp(t *testing.T, backend *fakeAuthBackend) *fiber.App {
	sessionstore.Instance = sessionstore.NewMemoryInstance()
	sessionguard.Instance = sessionguard.New(nil, false, time.Now)
	authhandler.Instance = authhandler.New(backend, sessionguard.Instance, nil, "/jobs")
	app := fiber.New()
	app.Use(middleware.ClientID(testCookie, false))
	InitAuthApiRouters(app)
	return app
}

func adminToken(t *testing.T) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	require.Nil(t, err)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	t.Run(`login session logout check`, func(t *testing.T) {
		app := setupAuthApp(t, &fakeAuthBackend{login: &authapimodels.LoginResponse{
			AccessToken: adminToken(t),
			User:        json.RawMessage(`{"id": 3, "email": "admin@example.com", "role": "super_admin", "status": "Active"}`),
		}})
		clientID := uuid.NewString()

		code, resp := call(t, app, clientID, http.MethodPost, "/auth/login", authapimodels.LoginRequest{Email: "admin@example.com", Password: "secret"})
		require.Equal(t, fiber.StatusOK, code)
		result := authapimodels.LoginResult{}
		require.Nil(t, json.Unmarshal(resp.Data, &result))
		require.Equal(t, "/admin/dashboard", result.Redirect)

		code, resp = call(t, app, clientID, http.MethodGet, "/auth/session", nil)
		require.Equal(t, fiber.StatusOK, code)
		view := authapimodels.SessionView{}
		require.Nil(t, json.Unmarshal(resp.Data, &view))
		require.True(t, view.Authenticated)

		code, resp = call(t, app, clientID, http.MethodPost, "/auth/logout", nil)
		require.Equal(t, fiber.StatusOK, code)
		redirect := apimodels.RedirectData{}
		require.Nil(t, json.Unmarshal(resp.Data, &redirect))
		require.Equal(t, "/jobs", redirect.Redirect)

		code, resp = call(t, app, clientID, http.MethodGet, "/auth/session", nil)
		require.Equal(t, fiber.StatusOK, code)
		require.Nil(t, json.Unmarshal(resp.Data, &view))
		require.False(t, view.Authenticated)
	})

	t.Run(`invalid email check`, func(t *testing.T) {
		app := setupAuthApp(t, &fakeAuthBackend{})
		code, resp := call(t, app, uuid.NewString(), http.MethodPost, "/auth/login", authapimodels.LoginRequest{Email: "not-an-email", Password: "secret"})
		require.Equal(t, fiber.StatusBadRequest, code)
		require.Equal(t, "Please enter a valid email address", resp.Message)
	})

	t.Run(`backend unreachable check`, func(t *testing.T) {
		app := setupAuthApp(t, &fakeAuthBackend{loginErr: client.ErrNoResponse})
		code, resp := call(t, app, uuid.NewString(), http.MethodPost, "/auth/login", authapimodels.LoginRequest{Email: "admin@example.com", Password: "secret"})
		require.Equal(t, fiber.StatusBadGateway, code)
		require.Equal(t, client.NoResponseMessage, resp.Message)
	})

	t.Run(`deactivated account message check`, func(t *testing.T) {
		app := setupAuthApp(t, &fakeAuthBackend{loginErr: &client.APIError{
			StatusCode:      http.StatusUnauthorized,
			Message:         "Your account is deactivated",
			SuperAdminEmail: "root@example.com",
		}})
		code, resp := call(t, app, uuid.NewString(), http.MethodPost, "/auth/login", authapimodels.LoginRequest{Email: "admin@example.com", Password: "secret"})
		require.Equal(t, fiber.StatusUnauthorized, code)
		require.Equal(t, "Your account is deactivated", resp.Message)
		require.JSONEq(t, `{"superAdminEmail": "root@example.com"}`, string(resp.Data))
	})
}
