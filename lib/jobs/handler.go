package jobshandler

import (
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"recruit-portal/lib/backend/client"
	jobapimodels "recruit-portal/models/api/job"
	wsmodels "recruit-portal/models/ws"
	"time"
)

const (
	JobsFailedMessage  = "Failed to fetch jobs"
	JobNotFoundMessage = "Job not found"
	JobSaveFailed      = "Failed to save job"
	JobDeleteFailed    = "Failed to delete job"
	JobToggleFailed    = "Failed to update job status"
	JobStatsFailed     = "Failed to fetch job statistics"
)

const (
	jobChangedCreated = "created"
	jobChangedUpdated = "updated"
	jobChangedDeleted = "deleted"
	jobChangedToggled = "status_changed"
)

type Backend interface {
	ListJobs(ctx context.Context, accessToken string, filter jobapimodels.JobFilter) ([]jobapimodels.Job, error)
	GetJob(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error)
	CreateJob(ctx context.Context, accessToken string, request jobapimodels.JobPayload) (*jobapimodels.Job, error)
	UpdateJob(ctx context.Context, accessToken, jobID string, request jobapimodels.JobPayload) (*jobapimodels.Job, error)
	DeleteJob(ctx context.Context, accessToken, jobID string) error
	ToggleJobStatus(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error)
	JobStats(ctx context.Context, accessToken string) (jobapimodels.JobStats, error)
}

// ApplicationChecker проверка отклика по запомненному email
type ApplicationChecker interface {
	HasApplied(ctx context.Context, email, jobTitle string) bool
}

type Notifier interface {
	Broadcast(msg wsmodels.ServerMessage)
}

// JobChange событие job_changed
type JobChange struct {
	Action string            `json:"action"`
	JobID  string            `json:"jobId"`
	Job    *jobapimodels.Job `json:"job,omitempty"`
}

type Provider interface {
	PublicList(ctx context.Context, filter jobapimodels.JobFilter, userEmail string) ([]jobapimodels.PublicJob, error)
	PublicGet(ctx context.Context, jobID string) (*jobapimodels.Job, error)
	List(ctx context.Context, accessToken string, filter jobapimodels.JobFilter) ([]jobapimodels.Job, error)
	Get(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error)
	Create(ctx context.Context, accessToken string, form jobapimodels.JobForm) (*jobapimodels.Job, error)
	Update(ctx context.Context, accessToken, jobID string, form jobapimodels.JobForm) (*jobapimodels.Job, error)
	Delete(ctx context.Context, accessToken, jobID string) error
	ToggleStatus(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error)
	Stats(ctx context.Context, accessToken string) (jobapimodels.JobStats, error)
}

var Instance Provider

func NewHandler(backend Backend, checker ApplicationChecker, notifier Notifier) {
	Instance = New(backend, checker, notifier, time.Now)
}

func New(backend Backend, checker ApplicationChecker, notifier Notifier, now func() time.Time) Provider {
	return impl{
		backend:  backend,
		checker:  checker,
		notifier: notifier,
		now:      now,
	}
}

type impl struct {
	backend  Backend
	checker  ApplicationChecker
	notifier Notifier
	now      func() time.Time
}

// PublicList только активные вакансии, фильтр бэкенда дополняется локальным
func (i impl) PublicList(ctx context.Context, filter jobapimodels.JobFilter, userEmail string) ([]jobapimodels.PublicJob, error) {
	active := true
	filter.IsActive = &active
	jobs, err := i.backend.ListJobs(ctx, "", filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка вакансий")
		return nil, err
	}
	result := make([]jobapimodels.PublicJob, 0, len(jobs))
	for _, job := range jobs {
		if !filter.Match(job) {
			continue
		}
		item := jobapimodels.PublicJob{Job: job}
		if userEmail != "" && i.checker != nil {
			item.Applied = i.checker.HasApplied(ctx, userEmail, job.Title)
		}
		result = append(result, item)
	}
	return result, nil
}

func (i impl) PublicGet(ctx context.Context, jobID string) (*jobapimodels.Job, error) {
	job, err := i.backend.GetJob(ctx, "", jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || !job.IsActive {
		return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: JobNotFoundMessage}
	}
	return job, nil
}

func (i impl) List(ctx context.Context, accessToken string, filter jobapimodels.JobFilter) ([]jobapimodels.Job, error) {
	jobs, err := i.backend.ListJobs(ctx, accessToken, filter)
	if err != nil {
		return nil, err
	}
	result := make([]jobapimodels.Job, 0, len(jobs))
	for _, job := range jobs {
		if filter.Match(job) {
			result = append(result, job)
		}
	}
	return result, nil
}

func (i impl) Get(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error) {
	return i.backend.GetJob(ctx, accessToken, jobID)
}

func (i impl) Create(ctx context.Context, accessToken string, form jobapimodels.JobForm) (*jobapimodels.Job, error) {
	if err := form.Validate(i.now()); err != nil {
		return nil, err
	}
	job, err := i.backend.CreateJob(ctx, accessToken, form.ToPayload())
	if err != nil {
		log.WithError(err).Error("ошибка создания вакансии")
		return nil, err
	}
	i.notify(jobChangedCreated, job.ID.String(), job)
	return job, nil
}

func (i impl) Update(ctx context.Context, accessToken, jobID string, form jobapimodels.JobForm) (*jobapimodels.Job, error) {
	if err := form.Validate(i.now()); err != nil {
		return nil, err
	}
	job, err := i.backend.UpdateJob(ctx, accessToken, jobID, form.ToPayload())
	if err != nil {
		log.WithField("job_id", jobID).WithError(err).Error("ошибка изменения вакансии")
		return nil, err
	}
	i.notify(jobChangedUpdated, jobID, job)
	return job, nil
}

func (i impl) Delete(ctx context.Context, accessToken, jobID string) error {
	if jobID == "" {
		return errors.New("job id is required")
	}
	err := i.backend.DeleteJob(ctx, accessToken, jobID)
	if err != nil {
		log.WithField("job_id", jobID).WithError(err).Error("ошибка удаления вакансии")
		return err
	}
	i.notify(jobChangedDeleted, jobID, nil)
	return nil
}

func (i impl) ToggleStatus(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error) {
	job, err := i.backend.ToggleJobStatus(ctx, accessToken, jobID)
	if err != nil {
		log.WithField("job_id", jobID).WithError(err).Error("ошибка переключения статуса вакансии")
		return nil, err
	}
	i.notify(jobChangedToggled, jobID, job)
	return job, nil
}

func (i impl) Stats(ctx context.Context, accessToken string) (jobapimodels.JobStats, error) {
	return i.backend.JobStats(ctx, accessToken)
}

func (i impl) notify(action, jobID string, job *jobapimodels.Job) {
	if i.notifier == nil {
		return
	}
	i.notifier.Broadcast(wsmodels.ServerMessage{
		Code: wsmodels.EventJobChanged,
		Data: JobChange{
			Action: action,
			JobID:  jobID,
			Job:    job,
		},
	})
}
