package apiv1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"recruit-portal/lib/backend/client"
	candidateshandler "recruit-portal/lib/candidates"
	statusworkflow "recruit-portal/lib/candidates/workflow"
	sessionguard "recruit-portal/lib/session/guard"
	sessionstore "recruit-portal/lib/session/store"
	"recruit-portal/middleware"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	candidateapimodels "recruit-portal/models/api/candidate"
)

const testCookie = "portal_client"

type fakeBackend struct {
	mu        sync.Mutex
	preview   string
	commitErr error
	commits   []candidateapimodels.StatusUpdateRequest
	tokens    []string
	ids       []string
}

func (f *fakeBackend) ListCandidates(ctx context.Context, accessToken string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.Candidate, error) {
	return []candidateapimodels.Candidate{
		{
			ID:       "7",
			Fullname: "Jane Doe",
			Email:    "jane@example.com",
			JobTitle: "Designer",
			Status:   models.CandidateReceived,
		},
	}, nil
}

func (f *fakeBackend) GetCandidate(ctx context.Context, accessToken, candidateID string) (*candidateapimodels.Candidate, error) {
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "Candidate not found"}
}

func (f *fakeBackend) DownloadResume(ctx context.Context, accessToken, fileName string) (*client.File, error) {
	return &client.File{Name: fileName, ContentType: "application/pdf", Content: []byte("%PDF-1.4")}, nil
}

func (f *fakeBackend) EmailPreview(ctx context.Context, accessToken, candidateID string, status models.CandidateStatus) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preview, nil
}

func (f *fakeBackend) UpdateCandidateStatus(ctx context.Context, accessToken, candidateID string, request candidateapimodels.StatusUpdateRequest) (*candidateapimodels.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits = append(f.commits, request)
	f.tokens = append(f.tokens, accessToken)
	f.ids = append(f.ids, candidateID)
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return &candidateapimodels.Candidate{ID: apimodels.ID(candidateID), Status: request.Status}, nil
}

func (f *fakeBackend) commitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.commits)
}

func setupCandidatesApp(t *testing.T, backend *fakeBackend) (*fiber.App, string, string) {
	sessionstore.Instance = sessionstore.NewMemoryInstance()
	sessionguard.Instance = sessionguard.New(nil, false, time.Now)
	candidateshandler.Instance = candidateshandler.New(backend, nil, 10, time.Minute)
	statusworkflow.Instance = statusworkflow.NewRegistry(func(clientID string) *statusworkflow.Workflow {
		return statusworkflow.New(statusworkflow.Config{
			ClientID: clientID,
			Backend:  backend,
			List:     candidateshandler.Instance.List(clientID),
			Tokens:   sessionstore.NewCache(sessionstore.Instance, clientID),
		})
	})

	clientID := uuid.NewString()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	require.Nil(t, err)
	cache := sessionstore.NewCache(sessionstore.Instance, clientID)
	require.Nil(t, cache.SaveCredentials(token, `{"id": 1, "email": "admin@example.com", "role": "admin"}`))

	app := fiber.New()
	app.Use(middleware.ClientID(testCookie, false))
	app.Use(middleware.SessionRequired("/login"))
	InitCandidatesApiRouters(app)
	return app, clientID, token
}

type testResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, clientID, method, path string, body interface{}) (int, testResponse) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.Nil(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: clientID})
	resp, err := app.Test(req)
	require.Nil(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	result := testResponse{}
	if len(raw) > 0 && raw[0] == '{' {
		require.Nil(t, json.Unmarshal(raw, &result))
	}
	return resp.StatusCode, result
}

func workflowView(t *testing.T, app *fiber.App, clientID string) statusworkflow.View {
	code, resp := call(t, app, clientID, http.MethodGet, "/status-change", nil)
	require.Equal(t, fiber.StatusOK, code)
	view := statusworkflow.View{}
	require.Nil(t, json.Unmarshal(resp.Data, &view))
	return view
}

func TestStatusChangeEndpoints(t *testing.T) {
	t.Run(`full status change check`, func(t *testing.T) {
		backend := &fakeBackend{}
		app, clientID, token := setupCandidatesApp(t, backend)

		code, resp := call(t, app, clientID, http.MethodGet, "/candidates", nil)
		require.Equal(t, fiber.StatusOK, code)
		page := candidateapimodels.CandidatePage{}
		require.Nil(t, json.Unmarshal(resp.Data, &page))
		require.Len(t, page.Items, 1)

		code, _ = call(t, app, clientID, http.MethodPost, "/candidates/7/status-change", candidateapimodels.InitiateRequest{NewStatus: models.CandidateInterview})
		require.Equal(t, fiber.StatusOK, code)
		require.Eventually(t, func() bool {
			return workflowView(t, app, clientID).Phase == statusworkflow.PhaseEditable
		}, time.Second, 10*time.Millisecond)

		content := "See you at the interview."
		code, resp = call(t, app, clientID, http.MethodPatch, "/status-change", candidateapimodels.EditEmailRequest{Content: &content})
		require.Equal(t, fiber.StatusOK, code)

		code, resp = call(t, app, clientID, http.MethodPost, "/status-change/confirm", nil)
		require.Equal(t, fiber.StatusOK, code)
		require.Equal(t, statusworkflow.CommitSuccessMessage, resp.Message)
		require.Equal(t, 1, backend.commitCount())
		require.Equal(t, content, backend.commits[0].EmailDetails.Content)
		require.Equal(t, "jane@example.com", backend.commits[0].EmailDetails.RecipientEmail)
		require.Equal(t, token, backend.tokens[0])

		view := workflowView(t, app, clientID)
		require.False(t, view.IsOpen)
		code, resp = call(t, app, clientID, http.MethodGet, "/candidates/page", nil)
		require.Equal(t, fiber.StatusOK, code)
		require.Nil(t, json.Unmarshal(resp.Data, &page))
		require.Equal(t, models.CandidateInterview, page.Items[0].Status)
	})

	t.Run(`candidate id survives later requests check`, func(t *testing.T) {
		backend := &fakeBackend{}
		app, clientID, _ := setupCandidatesApp(t, backend)
		call(t, app, clientID, http.MethodGet, "/candidates", nil)
		code, _ := call(t, app, clientID, http.MethodPost, "/candidates/7/status-change", candidateapimodels.InitiateRequest{NewStatus: models.CandidateInterview})
		require.Equal(t, fiber.StatusOK, code)
		require.Eventually(t, func() bool {
			return workflowView(t, app, clientID).Phase == statusworkflow.PhaseEditable
		}, time.Second, 10*time.Millisecond)

		// другой запрос в промежутке переписывает буфер fasthttp
		call(t, app, clientID, http.MethodGet, "/candidates/X/zzzzzzzzzzzz", nil)
		call(t, app, clientID, http.MethodGet, "/candidates/resume/qqqqqqqqqqqq.pdf", nil)
		require.Equal(t, "7", workflowView(t, app, clientID).CandidateID)

		code, _ = call(t, app, clientID, http.MethodPost, "/status-change/confirm", nil)
		require.Equal(t, fiber.StatusOK, code)
		require.Equal(t, []string{"7"}, backend.ids)

		page := candidateapimodels.CandidatePage{}
		code, resp := call(t, app, clientID, http.MethodGet, "/candidates/page", nil)
		require.Equal(t, fiber.StatusOK, code)
		require.Nil(t, json.Unmarshal(resp.Data, &page))
		require.Equal(t, models.CandidateInterview, page.Items[0].Status)
	})

	t.Run(`backend failure keeps modal open check`, func(t *testing.T) {
		backend := &fakeBackend{
			preview:   "Dear Jane Doe, ...",
			commitErr: &client.APIError{StatusCode: http.StatusInternalServerError, Message: "Mail server unavailable"},
		}
		app, clientID, _ := setupCandidatesApp(t, backend)
		call(t, app, clientID, http.MethodGet, "/candidates", nil)
		code, _ := call(t, app, clientID, http.MethodPost, "/candidates/7/status-change", candidateapimodels.InitiateRequest{NewStatus: models.CandidateRejected})
		require.Equal(t, fiber.StatusOK, code)
		require.Eventually(t, func() bool {
			return workflowView(t, app, clientID).Phase == statusworkflow.PhaseEditable
		}, time.Second, 10*time.Millisecond)

		code, resp := call(t, app, clientID, http.MethodPost, "/status-change/confirm", nil)
		require.Equal(t, fiber.StatusInternalServerError, code)
		require.Equal(t, "Mail server unavailable", resp.Message)
		view := workflowView(t, app, clientID)
		require.True(t, view.IsOpen)
		require.Equal(t, statusworkflow.PhaseFailed, view.Phase)
	})

	t.Run(`unknown candidate check`, func(t *testing.T) {
		app, clientID, _ := setupCandidatesApp(t, &fakeBackend{})
		code, resp := call(t, app, clientID, http.MethodPost, "/candidates/99/status-change", candidateapimodels.InitiateRequest{NewStatus: models.CandidateInterview})
		require.Equal(t, fiber.StatusNotFound, code)
		require.Equal(t, CandidateNotInListMessage, resp.Message)
	})

	t.Run(`invalid status check`, func(t *testing.T) {
		backend := &fakeBackend{}
		app, clientID, _ := setupCandidatesApp(t, backend)
		call(t, app, clientID, http.MethodGet, "/candidates", nil)
		code, _ := call(t, app, clientID, http.MethodPost, "/candidates/7/status-change", map[string]string{"newStatus": "Hired"})
		require.Equal(t, fiber.StatusBadRequest, code)
		require.False(t, workflowView(t, app, clientID).IsOpen)
		require.Equal(t, 0, backend.commitCount())
	})

	t.Run(`confirm without open modal check`, func(t *testing.T) {
		app, clientID, _ := setupCandidatesApp(t, &fakeBackend{})
		code, resp := call(t, app, clientID, http.MethodPost, "/status-change/confirm", nil)
		require.Equal(t, fiber.StatusConflict, code)
		require.Equal(t, statusworkflow.ErrNotOpen.Error(), resp.Message)
	})

	t.Run(`resume download check`, func(t *testing.T) {
		app, clientID, _ := setupCandidatesApp(t, &fakeBackend{})
		req := httptest.NewRequest(http.MethodGet, "/candidates/resume/cv.pdf", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: clientID})
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="cv.pdf"`)
		body, _ := io.ReadAll(resp.Body)
		require.Equal(t, "%PDF-1.4", string(body))
	})
}
