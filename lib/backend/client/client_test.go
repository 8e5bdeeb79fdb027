package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"recruit-portal/models"
	authapimodels "recruit-portal/models/api/auth"
	candidateapimodels "recruit-portal/models/api/candidate"
)

func TestClient(t *testing.T) {
	t.Run(`UpdateCandidateStatus request check`, func(t *testing.T) {
		var gotBody candidateapimodels.StatusUpdateRequest
		var gotAuth, gotPath, gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			gotMethod = r.Method
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"id": 7, "fullname": "Jane Doe", "status": "Interview"}`))
		}))
		defer server.Close()

		provider := New(server.URL, time.Second)
		request := candidateapimodels.StatusUpdateRequest{
			Status: models.CandidateInterview,
			EmailDetails: &candidateapimodels.EmailDetails{
				Content:        "body",
				RecipientEmail: "jane@example.com",
				RecipientName:  "Jane Doe",
			},
		}
		candidate, err := provider.UpdateCandidateStatus(context.TODO(), "token", "7", request)
		require.Nil(t, err)
		require.Equal(t, "Bearer token", gotAuth)
		require.Equal(t, "/candidates/7/status", gotPath)
		require.Equal(t, http.MethodPatch, gotMethod)
		require.Equal(t, models.CandidateInterview, gotBody.Status)
		require.Equal(t, "body", gotBody.EmailDetails.Content)
		require.Equal(t, "7", candidate.ID.String())
		require.Equal(t, models.CandidateInterview, candidate.Status)
	})

	t.Run(`EmailPreview escapes status check`, func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			_, _ = w.Write([]byte(`{"emailPreview": "Hello"}`))
		}))
		defer server.Close()

		preview, err := New(server.URL, time.Second).EmailPreview(context.TODO(), "", "3", models.CandidateUnderReview)
		require.Nil(t, err)
		require.Equal(t, "Hello", preview)
		require.Equal(t, "/candidates/3/email-preview/Under%20Review", gotPath)
	})

	t.Run(`backend message passthrough check`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Account is inactive", "superAdminEmail": "boss@example.com"}`))
		}))
		defer server.Close()

		_, err := New(server.URL, time.Second).Login(context.TODO(), authapimodels.LoginRequest{Email: "a@b.co", Password: "x"})
		require.NotNil(t, err)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, "boss@example.com", apiErr.SuperAdminEmail)
		require.Equal(t, "Account is inactive", UserMessage(err, "fallback"))
	})

	t.Run(`message list and error field check`, func(t *testing.T) {
		require.Equal(t, "a, b", newAPIError(400, []byte(`{"message": ["a", "b"]}`)).Message)
		require.Equal(t, "Bad Request", newAPIError(400, []byte(`{"error": "Bad Request"}`)).Message)
		require.Equal(t, "plain text", newAPIError(500, []byte(`plain text`)).Message)
		require.Equal(t, "", newAPIError(500, nil).Message)
		require.Equal(t, "fallback", UserMessage(newAPIError(500, nil), "fallback"))
	})

	t.Run(`no response check`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := New(url, time.Second).CandidateStats(context.TODO(), "")
		require.NotNil(t, err)
		require.True(t, errors.Is(err, ErrNoResponse))
		require.Equal(t, NoResponseMessage, UserMessage(err, "fallback"))
		require.Equal(t, 0, StatusCode(err))
	})

	t.Run(`UploadResume multipart field check`, func(t *testing.T) {
		var gotField, gotName, gotContent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("resume")
			if err == nil {
				gotField = "resume"
				gotName = header.Filename
				data, _ := io.ReadAll(file)
				gotContent = string(data)
			}
			_, _ = w.Write([]byte(`{"path": "uploads/cv.pdf"}`))
		}))
		defer server.Close()

		resp, err := New(server.URL, time.Second).UploadResume(context.TODO(), "cv.pdf", "application/pdf", strings.NewReader("pdf-data"))
		require.Nil(t, err)
		require.Equal(t, "uploads/cv.pdf", resp.Path)
		require.Equal(t, "resume", gotField)
		require.Equal(t, "cv.pdf", gotName)
		require.Equal(t, "pdf-data", gotContent)
	})

	t.Run(`DownloadResume not found check`, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := New(server.URL, time.Second).DownloadResume(context.TODO(), "t", "cv.pdf")
		require.NotNil(t, err)
		require.Equal(t, http.StatusNotFound, StatusCode(err))
	})

	t.Run(`response body not logged check`, func(t *testing.T) {
		hook := logtest.NewGlobal()
		defer hook.Reset()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == candidateStatsPath {
				_, _ = w.Write([]byte(`{"total": "secret-token"`))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message": "failed", "access_token": "secret-token"}`))
		}))
		defer server.Close()

		provider := New(server.URL, time.Second)
		_, err := provider.GetCandidate(context.TODO(), "t", "7")
		require.Equal(t, http.StatusInternalServerError, StatusCode(err))
		_, err = provider.CandidateStats(context.TODO(), "t")
		require.NotNil(t, err)

		entries := hook.AllEntries()
		require.Len(t, entries, 2)
		for _, entry := range entries {
			require.NotContains(t, entry.Data, "response_body")
			require.Contains(t, entry.Data, "response_size")
			for _, value := range entry.Data {
				require.NotContains(t, fmt.Sprint(value), "secret-token")
			}
		}
	})
}
