package applicationhandler

import (
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"recruit-portal/lib/backend/client"
	sessionstore "recruit-portal/lib/session/store"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	candidateapimodels "recruit-portal/models/api/candidate"
	"strings"
)

const (
	AlreadyAppliedMessage     = "You have already applied for this position."
	UploadFailedMessage       = "Failed to upload file"
	SubmitFailedMessage       = "Failed to submit application"
	SubmitSuccessMessage      = "Application submitted successfully!"
	applicationCheckFailedLog = "ошибка проверки повторного отклика, продолжаем отправку"
)

type Backend interface {
	CheckApplication(ctx context.Context, email, jobTitle string) (*candidateapimodels.ApplicationCheck, error)
	UploadResume(ctx context.Context, fileName, contentType string, content io.Reader) (*candidateapimodels.UploadResponse, error)
	CreateCandidate(ctx context.Context, request candidateapimodels.CreateCandidateRequest) (*candidateapimodels.Candidate, error)
}

// Resume файл резюме из анкеты
type Resume struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type Provider interface {
	Submit(ctx context.Context, cache *sessionstore.Cache, form candidateapimodels.ApplicationForm, resume *Resume) (*candidateapimodels.Candidate, error)
	HasApplied(ctx context.Context, email, jobTitle string) bool
	RememberEmail(cache *sessionstore.Cache, email string) error
	RememberedEmail(cache *sessionstore.Cache) string
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

func (i impl) Submit(ctx context.Context, cache *sessionstore.Cache, form candidateapimodels.ApplicationForm, resume *Resume) (*candidateapimodels.Candidate, error) {
	if resume != nil {
		if err := candidateapimodels.ValidateResumeFile(resume.ContentType, resume.Size); err != nil {
			return nil, apimodels.FormErrors{"file": err.Error()}
		}
	}
	if err := form.Validate(resume != nil); err != nil {
		return nil, err
	}
	logger := log.
		WithField("client_id", cache.ClientID()).
		WithField("job_title", form.JobTitle)
	if err := i.RememberEmail(cache, form.Email); err != nil {
		logger.WithError(err).Warn("не удалось сохранить email кандидата")
	}

	check, err := i.backend.CheckApplication(ctx, strings.TrimSpace(form.Email), form.JobTitle)
	if err != nil {
		logger.WithError(err).Warn(applicationCheckFailedLog)
	} else if check.HasApplied {
		message := check.Message
		if message == "" {
			message = AlreadyAppliedMessage
		}
		return nil, &client.APIError{StatusCode: http.StatusConflict, Message: message}
	}

	resumePath := ""
	if resume != nil {
		uploaded, err := i.backend.UploadResume(ctx, resume.Name, resume.ContentType, resume.Content)
		if err != nil {
			logger.WithError(err).Error("ошибка загрузки резюме")
			return nil, errors.Wrap(userError(err, UploadFailedMessage), "ошибка загрузки резюме")
		}
		resumePath = uploaded.Path
	}

	candidate, err := i.backend.CreateCandidate(ctx, form.ToCreateRequest(resumePath))
	if err != nil {
		logger.WithError(err).Error("ошибка создания кандидата")
		return nil, errors.Wrap(userError(err, SubmitFailedMessage), "ошибка создания кандидата")
	}
	logger.Info("анкета кандидата отправлена")
	return candidate, nil
}

// HasApplied ошибка проверки считается отсутствием отклика
func (i impl) HasApplied(ctx context.Context, email, jobTitle string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	check, err := i.backend.CheckApplication(ctx, strings.TrimSpace(email), jobTitle)
	if err != nil {
		log.WithField("job_title", jobTitle).WithError(err).Debug(applicationCheckFailedLog)
		return false
	}
	return check.HasApplied
}

func (i impl) RememberEmail(cache *sessionstore.Cache, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	return cache.Set(models.SessionKeyUserEmail, email)
}

func (i impl) RememberedEmail(cache *sessionstore.Cache) string {
	email, _, err := cache.Get(models.SessionKeyUserEmail)
	if err != nil {
		log.WithField("client_id", cache.ClientID()).WithError(err).Warn("не удалось прочитать email кандидата")
		return ""
	}
	return email
}

func userError(err error, fallback string) *client.APIError {
	code := client.StatusCode(err)
	if code == 0 {
		code = http.StatusBadGateway
	}
	return &client.APIError{StatusCode: code, Message: client.UserMessage(err, fallback)}
}
