package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"recruit-portal/models"
	adminapimodels "recruit-portal/models/api/admin"
	authapimodels "recruit-portal/models/api/auth"
	candidateapimodels "recruit-portal/models/api/candidate"
	jobapimodels "recruit-portal/models/api/job"
	"strings"
	"time"
)

type Provider interface {
	Login(ctx context.Context, request authapimodels.LoginRequest) (*authapimodels.LoginResponse, error)
	ForgotPassword(ctx context.Context, request authapimodels.ForgotPasswordRequest) (*authapimodels.BackendResult, error)
	ChangeTemporaryPassword(ctx context.Context, request authapimodels.ChangeTemporaryPasswordRequest) (*authapimodels.BackendResult, error)
	ValidateToken(ctx context.Context, accessToken string) error

	ListCandidates(ctx context.Context, accessToken string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.Candidate, error)
	GetCandidate(ctx context.Context, accessToken, candidateID string) (*candidateapimodels.Candidate, error)
	CreateCandidate(ctx context.Context, request candidateapimodels.CreateCandidateRequest) (*candidateapimodels.Candidate, error)
	UpdateCandidateStatus(ctx context.Context, accessToken, candidateID string, request candidateapimodels.StatusUpdateRequest) (*candidateapimodels.Candidate, error)
	EmailPreview(ctx context.Context, accessToken, candidateID string, status models.CandidateStatus) (string, error)
	CandidateStats(ctx context.Context, accessToken string) (*candidateapimodels.CandidateStats, error)
	CheckApplication(ctx context.Context, email, jobTitle string) (*candidateapimodels.ApplicationCheck, error)
	UploadResume(ctx context.Context, fileName, contentType string, content io.Reader) (*candidateapimodels.UploadResponse, error)
	DownloadResume(ctx context.Context, accessToken, fileName string) (*File, error)

	ListJobs(ctx context.Context, accessToken string, filter jobapimodels.JobFilter) ([]jobapimodels.Job, error)
	GetJob(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error)
	CreateJob(ctx context.Context, accessToken string, request jobapimodels.JobPayload) (*jobapimodels.Job, error)
	UpdateJob(ctx context.Context, accessToken, jobID string, request jobapimodels.JobPayload) (*jobapimodels.Job, error)
	DeleteJob(ctx context.Context, accessToken, jobID string) error
	ToggleJobStatus(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error)
	JobStats(ctx context.Context, accessToken string) (jobapimodels.JobStats, error)

	ListAdmins(ctx context.Context, accessToken string) ([]adminapimodels.Admin, error)
	AddAdmin(ctx context.Context, accessToken string, request adminapimodels.AddAdminRequest) (*adminapimodels.MessageResponse, error)
	ToggleAdminStatus(ctx context.Context, accessToken, adminID string, request adminapimodels.ToggleStatusRequest) error
	RemoveAdmin(ctx context.Context, accessToken, adminID string) error
	TestPassword(ctx context.Context, accessToken string, request adminapimodels.TestPasswordRequest) (*adminapimodels.TestPasswordResponse, error)
	UpdatePassword(ctx context.Context, accessToken string, request adminapimodels.UpdatePasswordRequest) (*adminapimodels.MessageResponse, error)
	UpdateEmail(ctx context.Context, accessToken string, request adminapimodels.UpdateEmailRequest) (*adminapimodels.MessageResponse, error)

	ExportJobsCSV(ctx context.Context, accessToken string) (*File, error)
	ExportCandidatesCSV(ctx context.Context, accessToken string) (*File, error)
}

// File бинарный ответ бэкенда
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

var Instance Provider

type impl struct {
	host   string
	client *http.Client
}

func NewProvider(host string, timeout time.Duration) {
	Instance = New(host, timeout)
}

func New(host string, timeout time.Duration) Provider {
	return &impl{
		host:   strings.TrimRight(host, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

const (
	loginPath                   string = "/auth/login"
	forgotPasswordPath          string = "/auth/forgot-password"
	changeTemporaryPasswordPath string = "/auth/change-temporary-password"
	validatePath                string = "/auth/validate"
	candidatesPath              string = "/candidates"
	candidatePath               string = "/candidates/%v"
	candidateStatusPath         string = "/candidates/%v/status"
	emailPreviewPath            string = "/candidates/%v/email-preview/%v"
	candidateStatsPath          string = "/candidates/stats/overview"
	checkApplicationPath        string = "/candidates/check-application"
	uploadPath                  string = "/candidates/upload"
	downloadPath                string = "/candidates/download/%v"
	candidatesCSVPath           string = "/candidates/export/csv"
	jobsPath                    string = "/job-posts"
	jobPath                     string = "/job-posts/%v"
	jobTogglePath               string = "/job-posts/%v/toggle-status"
	jobStatsPath                string = "/job-posts/stats"
	jobsCSVPath                 string = "/job-posts/export/csv"
	adminsPath                  string = "/users/admins"
	addAdminPath                string = "/users/add-admin"
	toggleAdminPath             string = "/users/toggle-admin-status/%v"
	removeAdminPath             string = "/users/remove-admin/%v"
	testPasswordPath            string = "/users/test-password"
	updatePasswordPath          string = "/users/update-password"
	updateEmailPath             string = "/users/update-email"
	resumeUploadField           string = "resume"
)

func (i impl) Login(ctx context.Context, request authapimodels.LoginRequest) (*authapimodels.LoginResponse, error) {
	logger := log.WithField("email", request.Email)
	resp := authapimodels.LoginResponse{}
	err := i.sendJSON(ctx, logger, http.MethodPost, loginPath, request, &resp, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) ForgotPassword(ctx context.Context, request authapimodels.ForgotPasswordRequest) (*authapimodels.BackendResult, error) {
	logger := log.WithField("email", request.Email)
	resp := authapimodels.BackendResult{}
	err := i.sendJSON(ctx, logger, http.MethodPost, forgotPasswordPath, request, &resp, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) ChangeTemporaryPassword(ctx context.Context, request authapimodels.ChangeTemporaryPasswordRequest) (*authapimodels.BackendResult, error) {
	logger := log.WithField("email", request.Email)
	resp := authapimodels.BackendResult{}
	err := i.sendJSON(ctx, logger, http.MethodPost, changeTemporaryPasswordPath, request.ToBackend(), &resp, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) ValidateToken(ctx context.Context, accessToken string) error {
	return i.sendJSON(ctx, log.NewEntry(log.StandardLogger()), http.MethodGet, validatePath, nil, nil, accessToken)
}

func (i impl) ListCandidates(ctx context.Context, accessToken string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.Candidate, error) {
	path := candidatesPath
	if query := filter.Query(); len(query) > 0 {
		path += "?" + query.Encode()
	}
	resp := []candidateapimodels.Candidate{}
	err := i.sendJSON(ctx, log.NewEntry(log.StandardLogger()), http.MethodGet, path, nil, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (i impl) GetCandidate(ctx context.Context, accessToken, candidateID string) (*candidateapimodels.Candidate, error) {
	logger := log.WithField("candidate_id", candidateID)
	resp := candidateapimodels.Candidate{}
	err := i.sendJSON(ctx, logger, http.MethodGet, fmt.Sprintf(candidatePath, url.PathEscape(candidateID)), nil, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) CreateCandidate(ctx context.Context, request candidateapimodels.CreateCandidateRequest) (*candidateapimodels.Candidate, error) {
	logger := log.
		WithField("email", request.Email).
		WithField("job_title", request.JobTitle)
	resp := candidateapimodels.Candidate{}
	err := i.sendJSON(ctx, logger, http.MethodPost, candidatesPath, request, &resp, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) UpdateCandidateStatus(ctx context.Context, accessToken, candidateID string, request candidateapimodels.StatusUpdateRequest) (*candidateapimodels.Candidate, error) {
	logger := log.
		WithField("candidate_id", candidateID).
		WithField("status", request.Status)
	resp := candidateapimodels.Candidate{}
	err := i.sendJSON(ctx, logger, http.MethodPatch, fmt.Sprintf(candidateStatusPath, url.PathEscape(candidateID)), request, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) EmailPreview(ctx context.Context, accessToken, candidateID string, status models.CandidateStatus) (string, error) {
	logger := log.
		WithField("candidate_id", candidateID).
		WithField("status", status)
	path := fmt.Sprintf(emailPreviewPath, url.PathEscape(candidateID), url.PathEscape(status.String()))
	resp := candidateapimodels.EmailPreviewResponse{}
	err := i.sendJSON(ctx, logger, http.MethodGet, path, nil, &resp, accessToken)
	if err != nil {
		return "", err
	}
	return resp.EmailPreview, nil
}

func (i impl) CandidateStats(ctx context.Context, accessToken string) (*candidateapimodels.CandidateStats, error) {
	resp := candidateapimodels.CandidateStats{}
	err := i.sendJSON(ctx, log.NewEntry(log.StandardLogger()), http.MethodGet, candidateStatsPath, nil, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) CheckApplication(ctx context.Context, email, jobTitle string) (*candidateapimodels.ApplicationCheck, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("jobTitle", jobTitle)
	logger := log.
		WithField("email", email).
		WithField("job_title", jobTitle)
	resp := candidateapimodels.ApplicationCheck{}
	err := i.sendJSON(ctx, logger, http.MethodGet, checkApplicationPath+"?"+query.Encode(), nil, &resp, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) UploadResume(ctx context.Context, fileName, contentType string, content io.Reader) (*candidateapimodels.UploadResponse, error) {
	uri := i.host + uploadPath
	logger := log.
		WithField("external_request", uri).
		WithField("file_name", fileName)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(resumePartHeader(fileName, contentType))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса")
	}
	if _, err = io.Copy(part, content); err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла резюме")
	}
	if err = writer.Close(); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса")
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, body)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса")
	}
	r.Header.Add("Content-Type", writer.FormDataContentType())
	resp := candidateapimodels.UploadResponse{}
	err = i.sendRequest(logger, r, &resp, "")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) DownloadResume(ctx context.Context, accessToken, fileName string) (*File, error) {
	logger := log.WithField("file_name", fileName)
	return i.downloadFile(ctx, logger, fmt.Sprintf(downloadPath, url.PathEscape(fileName)), fileName,
		"application/pdf,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		accessToken)
}

func (i impl) ListJobs(ctx context.Context, accessToken string, filter jobapimodels.JobFilter) ([]jobapimodels.Job, error) {
	path := jobsPath
	if query := filter.Query(); len(query) > 0 {
		path += "?" + query.Encode()
	}
	resp := []jobapimodels.Job{}
	err := i.sendJSON(ctx, log.NewEntry(log.StandardLogger()), http.MethodGet, path, nil, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (i impl) GetJob(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error) {
	logger := log.WithField("job_id", jobID)
	resp := jobapimodels.Job{}
	err := i.sendJSON(ctx, logger, http.MethodGet, fmt.Sprintf(jobPath, url.PathEscape(jobID)), nil, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) CreateJob(ctx context.Context, accessToken string, request jobapimodels.JobPayload) (*jobapimodels.Job, error) {
	logger := log.WithField("job_title", request.Title)
	resp := jobapimodels.Job{}
	err := i.sendJSON(ctx, logger, http.MethodPost, jobsPath, request, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) UpdateJob(ctx context.Context, accessToken, jobID string, request jobapimodels.JobPayload) (*jobapimodels.Job, error) {
	logger := log.WithField("job_id", jobID)
	resp := jobapimodels.Job{}
	err := i.sendJSON(ctx, logger, http.MethodPut, fmt.Sprintf(jobPath, url.PathEscape(jobID)), request, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) DeleteJob(ctx context.Context, accessToken, jobID string) error {
	logger := log.WithField("job_id", jobID)
	return i.sendJSON(ctx, logger, http.MethodDelete, fmt.Sprintf(jobPath, url.PathEscape(jobID)), nil, nil, accessToken)
}

func (i impl) ToggleJobStatus(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error) {
	logger := log.WithField("job_id", jobID)
	resp := jobapimodels.Job{}
	err := i.sendJSON(ctx, logger, http.MethodPut, fmt.Sprintf(jobTogglePath, url.PathEscape(jobID)), nil, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) JobStats(ctx context.Context, accessToken string) (jobapimodels.JobStats, error) {
	resp := jobapimodels.JobStats{}
	err := i.sendJSON(ctx, log.NewEntry(log.StandardLogger()), http.MethodGet, jobStatsPath, nil, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (i impl) ListAdmins(ctx context.Context, accessToken string) ([]adminapimodels.Admin, error) {
	resp := []adminapimodels.Admin{}
	err := i.sendJSON(ctx, log.NewEntry(log.StandardLogger()), http.MethodGet, adminsPath, nil, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (i impl) AddAdmin(ctx context.Context, accessToken string, request adminapimodels.AddAdminRequest) (*adminapimodels.MessageResponse, error) {
	logger := log.
		WithField("email", request.Email).
		WithField("role", request.Role)
	resp := adminapimodels.MessageResponse{}
	err := i.sendJSON(ctx, logger, http.MethodPost, addAdminPath, request, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) ToggleAdminStatus(ctx context.Context, accessToken, adminID string, request adminapimodels.ToggleStatusRequest) error {
	logger := log.
		WithField("admin_id", adminID).
		WithField("status", request.Status)
	return i.sendJSON(ctx, logger, http.MethodPatch, fmt.Sprintf(toggleAdminPath, url.PathEscape(adminID)), request, nil, accessToken)
}

func (i impl) RemoveAdmin(ctx context.Context, accessToken, adminID string) error {
	logger := log.WithField("admin_id", adminID)
	return i.sendJSON(ctx, logger, http.MethodDelete, fmt.Sprintf(removeAdminPath, url.PathEscape(adminID)), nil, nil, accessToken)
}

func (i impl) TestPassword(ctx context.Context, accessToken string, request adminapimodels.TestPasswordRequest) (*adminapimodels.TestPasswordResponse, error) {
	resp := adminapimodels.TestPasswordResponse{}
	err := i.sendJSON(ctx, log.NewEntry(log.StandardLogger()), http.MethodPost, testPasswordPath, request, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) UpdatePassword(ctx context.Context, accessToken string, request adminapimodels.UpdatePasswordRequest) (*adminapimodels.MessageResponse, error) {
	resp := adminapimodels.MessageResponse{}
	err := i.sendJSON(ctx, log.NewEntry(log.StandardLogger()), http.MethodPatch, updatePasswordPath, request.ToBackend(), &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) UpdateEmail(ctx context.Context, accessToken string, request adminapimodels.UpdateEmailRequest) (*adminapimodels.MessageResponse, error) {
	logger := log.WithField("email", request.Email)
	resp := adminapimodels.MessageResponse{}
	err := i.sendJSON(ctx, logger, http.MethodPatch, updateEmailPath, request, &resp, accessToken)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (i impl) ExportJobsCSV(ctx context.Context, accessToken string) (*File, error) {
	return i.downloadFile(ctx, log.NewEntry(log.StandardLogger()), jobsCSVPath, "jobs.csv", "text/csv", accessToken)
}

func (i impl) ExportCandidatesCSV(ctx context.Context, accessToken string) (*File, error) {
	return i.downloadFile(ctx, log.NewEntry(log.StandardLogger()), candidatesCSVPath, "candidates.csv", "text/csv", accessToken)
}

func (i impl) sendJSON(ctx context.Context, logger *log.Entry, method, path string, request, resp interface{}, accessToken string) error {
	uri := i.host + path
	logger = logger.WithField("external_request", uri)
	var body io.Reader
	if request != nil {
		data, err := json.Marshal(request)
		if err != nil {
			return errors.Wrap(err, "ошибка сериализации запроса")
		}
		body = bytes.NewBuffer(data)
	}
	r, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return errors.Wrap(err, "ошибка формирования запроса")
	}
	r.Header.Add("Content-Type", "application/json")
	r.Header.Add("Accept", "application/json")
	return i.sendRequest(logger, r, resp, accessToken)
}

func (i impl) downloadFile(ctx context.Context, logger *log.Entry, path, name, accept, accessToken string) (*File, error) {
	uri := i.host + path
	logger = logger.WithField("external_request", uri)
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования запроса")
	}
	r.Header.Add("Accept", accept)
	if accessToken != "" {
		r.Header.Add("Authorization", fmt.Sprintf("Bearer %v", accessToken))
	}
	response, err := i.client.Do(r)
	if err != nil {
		logger.WithError(err).Error("бэкенд не ответил")
		return nil, errors.Wrap(ErrNoResponse, err.Error())
	}
	defer response.Body.Close()
	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(ErrNoResponse, err.Error())
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		logger.
			WithField("status_code", response.StatusCode).
			Error("ошибка загрузки файла с бэкенда")
		return nil, newAPIError(response.StatusCode, content)
	}
	return &File{
		Name:        name,
		ContentType: response.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

func (i impl) sendRequest(logger *log.Entry, r *http.Request, resp interface{}, accessToken string) error {
	r.Header.Add("User-Agent", "RecruitPortal/1.0")
	if accessToken != "" {
		r.Header.Add("Authorization", fmt.Sprintf("Bearer %v", accessToken))
	}
	response, err := i.client.Do(r)
	if err != nil {
		logger.WithError(err).Error("бэкенд не ответил")
		return errors.Wrap(ErrNoResponse, err.Error())
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения ответа")
		return errors.Wrap(ErrNoResponse, err.Error())
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if resp != nil && len(bytes.TrimSpace(responseBody)) > 0 {
			err = json.Unmarshal(responseBody, resp)
			if err != nil {
				logger.
					WithField("response_size", len(responseBody)).
					WithError(err).
					Error("ошибка десериализации ответа")
				return errors.Wrap(err, "ошибка десериализации ответа")
			}
		}
		return nil
	}
	// тело ответа может содержать токены и персональные данные, в лог пишется только размер
	logger.
		WithField("status_code", response.StatusCode).
		WithField("response_size", len(responseBody)).
		Warn("бэкенд вернул ошибку")
	return newAPIError(response.StatusCode, responseBody)
}
