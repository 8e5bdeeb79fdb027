package jobshandler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"recruit-portal/lib/backend/client"
	apimodels "recruit-portal/models/api"
	jobapimodels "recruit-portal/models/api/job"
	wsmodels "recruit-portal/models/ws"
)

type fakeBackend struct {
	jobs       []jobapimodels.Job
	lastFilter jobapimodels.JobFilter
	lastToken  string
	created    []jobapimodels.JobPayload
	deleted    []string
}

func (f *fakeBackend) ListJobs(ctx context.Context, accessToken string, filter jobapimodels.JobFilter) ([]jobapimodels.Job, error) {
	f.lastFilter = filter
	f.lastToken = accessToken
	return f.jobs, nil
}

func (f *fakeBackend) GetJob(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error) {
	for _, job := range f.jobs {
		if job.ID.String() == jobID {
			result := job
			return &result, nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound}
}

func (f *fakeBackend) CreateJob(ctx context.Context, accessToken string, request jobapimodels.JobPayload) (*jobapimodels.Job, error) {
	f.created = append(f.created, request)
	return &jobapimodels.Job{ID: "9", Title: request.Title, IsActive: true}, nil
}

func (f *fakeBackend) UpdateJob(ctx context.Context, accessToken, jobID string, request jobapimodels.JobPayload) (*jobapimodels.Job, error) {
	return &jobapimodels.Job{ID: "9", Title: request.Title}, nil
}

func (f *fakeBackend) DeleteJob(ctx context.Context, accessToken, jobID string) error {
	f.deleted = append(f.deleted, jobID)
	return nil
}

func (f *fakeBackend) ToggleJobStatus(ctx context.Context, accessToken, jobID string) (*jobapimodels.Job, error) {
	return &jobapimodels.Job{ID: "9"}, nil
}

func (f *fakeBackend) JobStats(ctx context.Context, accessToken string) (jobapimodels.JobStats, error) {
	return jobapimodels.JobStats{"total": 1}, nil
}

type fakeChecker map[string]bool

func (f fakeChecker) HasApplied(ctx context.Context, email, jobTitle string) bool {
	return f[email+"|"+jobTitle]
}

type recordingNotifier struct {
	msgs []wsmodels.ServerMessage
}

func (r *recordingNotifier) Broadcast(msg wsmodels.ServerMessage) {
	r.msgs = append(r.msgs, msg)
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
}

func validJobForm() jobapimodels.JobForm {
	return jobapimodels.JobForm{
		Title:          "Backend Engineer",
		Company:        "Smart Recruit",
		Department:     "Engineering",
		Location:       "Addis Ababa",
		Deadline:       "2026-12-01",
		EmploymentType: "Full-time",
		Description:    "Build services",
		Requirements:   "Go",
		Skills:         "Go, SQL",
		Salary:         "50000",
	}
}

func TestJobs(t *testing.T) {
	t.Run(`public list active only with applied flag check`, func(t *testing.T) {
		backend := &fakeBackend{jobs: []jobapimodels.Job{
			{ID: "1", Title: "Backend Engineer", Department: "Engineering", EmploymentType: "Full-time", IsActive: true},
			{ID: "2", Title: "Designer", Department: "Design", EmploymentType: "Part-time", IsActive: true},
			{ID: "3", Title: "Archived", Department: "Engineering", IsActive: false},
		}}
		checker := fakeChecker{"abebe@example.com|Backend Engineer": true}
		handler := New(backend, checker, nil, fixedNow)

		jobs, err := handler.PublicList(context.TODO(), jobapimodels.JobFilter{}, "abebe@example.com")
		require.Nil(t, err)
		require.Len(t, jobs, 2)
		require.True(t, jobs[0].Applied)
		require.False(t, jobs[1].Applied)
		require.NotNil(t, backend.lastFilter.IsActive)
		require.True(t, *backend.lastFilter.IsActive)
		require.Empty(t, backend.lastToken)

		jobs, err = handler.PublicList(context.TODO(), jobapimodels.JobFilter{Search: "design"}, "")
		require.Nil(t, err)
		require.Len(t, jobs, 1)
		require.Equal(t, "2", jobs[0].ID.String())

		_, err = handler.PublicGet(context.TODO(), "3")
		require.Equal(t, http.StatusNotFound, client.StatusCode(err))
	})

	t.Run(`create validates and broadcasts check`, func(t *testing.T) {
		backend := &fakeBackend{}
		notifier := &recordingNotifier{}
		handler := New(backend, nil, notifier, fixedNow)

		form := validJobForm()
		form.Salary = "a lot"
		_, err := handler.Create(context.TODO(), "token", form)
		require.EqualError(t, err, "Salary must be a number")

		form = validJobForm()
		form.Deadline = "2026-01-01"
		_, err = handler.Create(context.TODO(), "token", form)
		require.EqualError(t, err, "Deadline must be in the future")

		form = validJobForm()
		form.Title = ""
		form.Skills = " "
		_, err = handler.Create(context.TODO(), "token", form)
		require.EqualError(t, err, "Skills are required; Title is required")
		var formErrors apimodels.FormErrors
		require.ErrorAs(t, err, &formErrors)
		require.Equal(t, apimodels.FormErrors{"title": "Title is required", "skills": "Skills are required"}, formErrors)

		form = validJobForm()
		form.Salary = "NaN"
		_, err = handler.Create(context.TODO(), "token", form)
		require.EqualError(t, err, "Salary must be a number")
		require.Empty(t, backend.created)

		job, err := handler.Create(context.TODO(), "token", validJobForm())
		require.Nil(t, err)
		require.Equal(t, "9", job.ID.String())
		require.Equal(t, float64(50000), backend.created[0].Salary)
		require.Equal(t, "0-1 years", backend.created[0].Experience)
		require.Len(t, notifier.msgs, 1)
		require.Equal(t, wsmodels.EventJobChanged, notifier.msgs[0].Code)
		require.Equal(t, "created", notifier.msgs[0].Data.(JobChange).Action)
	})

	t.Run(`delete and toggle broadcast check`, func(t *testing.T) {
		backend := &fakeBackend{}
		notifier := &recordingNotifier{}
		handler := New(backend, nil, notifier, fixedNow)
		require.Nil(t, handler.Delete(context.TODO(), "token", "9"))
		_, err := handler.ToggleStatus(context.TODO(), "token", "9")
		require.Nil(t, err)
		require.Equal(t, []string{"9"}, backend.deleted)
		require.Len(t, notifier.msgs, 2)
		require.Equal(t, "deleted", notifier.msgs[0].Data.(JobChange).Action)
		require.Equal(t, "status_changed", notifier.msgs[1].Data.(JobChange).Action)
	})
}
