package statspoller

import (
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	baseworker "recruit-portal/lib/utils/base-worker"
	candidateapimodels "recruit-portal/models/api/candidate"
	dashboardapimodels "recruit-portal/models/api/dashboard"
	jobapimodels "recruit-portal/models/api/job"
	"sync"
	"time"
)

const workerName = "stats_poller"

var ErrNoSnapshot = errors.New("Statistics are not available yet")

// Backend источники статистики
type Backend interface {
	ListJobs(ctx context.Context, accessToken string, filter jobapimodels.JobFilter) ([]jobapimodels.Job, error)
	ListCandidates(ctx context.Context, accessToken string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.Candidate, error)
	CandidateStats(ctx context.Context, accessToken string) (*candidateapimodels.CandidateStats, error)
	JobStats(ctx context.Context, accessToken string) (jobapimodels.JobStats, error)
}

type Provider interface {
	Start(ctx context.Context)
	Stop()
	// Snapshot последний снимок; без снимка выполняет синхронное обновление
	Snapshot(ctx context.Context, accessToken string) (dashboardapimodels.StatsSnapshot, error)
	Refresh(ctx context.Context) bool
}

var Instance Provider

func NewHandler(backend Backend, interval time.Duration) {
	Instance = New(backend, interval, time.Now)
}

func New(backend Backend, interval time.Duration, now func() time.Time) Provider {
	return &impl{
		backend: backend,
		worker:  baseworker.NewInstance(workerName, interval, interval),
		now:     now,
	}
}

type impl struct {
	backend Backend
	worker  *baseworker.BaseImpl
	now     func() time.Time

	mu       sync.RWMutex
	token    string
	snapshot *dashboardapimodels.StatsSnapshot
}

func (i *impl) Start(ctx context.Context) {
	i.worker.Start(ctx, i.refresh)
}

func (i *impl) Stop() {
	i.worker.Stop()
}

func (i *impl) Snapshot(ctx context.Context, accessToken string) (dashboardapimodels.StatsSnapshot, error) {
	i.mu.Lock()
	if accessToken != "" {
		i.token = accessToken
	}
	current := i.snapshot
	i.mu.Unlock()
	if current != nil {
		return *current, nil
	}

	i.Refresh(ctx)

	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.snapshot == nil {
		return dashboardapimodels.StatsSnapshot{}, ErrNoSnapshot
	}
	return *i.snapshot, nil
}

func (i *impl) Refresh(ctx context.Context) bool {
	return i.worker.TryRun(ctx, i.refresh)
}

func (i *impl) refresh(ctx context.Context) {
	i.mu.RLock()
	token := i.token
	previous := i.snapshot
	i.mu.RUnlock()
	logger := log.WithField("worker_name", workerName)
	if token == "" {
		logger.Debug("нет токена администратора, обновление статистики пропущено")
		return
	}

	next := dashboardapimodels.StatsSnapshot{}
	if previous != nil {
		next = *previous
	}
	updated := false

	dashboard, err := i.dashboard(ctx, token)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления статистики дашборда")
	} else {
		next.Dashboard = dashboard
		updated = true
	}
	candidateStats, err := i.backend.CandidateStats(ctx, token)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления статистики кандидатов")
	} else {
		next.Candidates = candidateStats
		updated = true
	}
	jobStats, err := i.backend.JobStats(ctx, token)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления статистики вакансий")
	} else {
		next.Jobs = jobStats
		updated = true
	}
	if !updated {
		return
	}
	next.UpdatedAt = i.now()

	i.mu.Lock()
	i.snapshot = &next
	i.mu.Unlock()
}

func (i *impl) dashboard(ctx context.Context, token string) (*dashboardapimodels.DashboardStats, error) {
	jobs, err := i.backend.ListJobs(ctx, token, jobapimodels.JobFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка вакансий")
	}
	candidates, err := i.backend.ListCandidates(ctx, token, candidateapimodels.CandidateFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка кандидатов")
	}
	stats := ComputeDashboard(jobs, candidates, i.now())
	return &stats, nil
}

// ComputeDashboard newToday считается по локальной дате создания кандидата
func ComputeDashboard(jobs []jobapimodels.Job, candidates []candidateapimodels.Candidate, now time.Time) dashboardapimodels.DashboardStats {
	stats := dashboardapimodels.DashboardStats{
		TotalJobs:         len(jobs),
		TotalApplications: len(candidates),
	}
	for _, job := range jobs {
		if job.IsActive {
			stats.ActiveJobs++
		}
	}
	year, month, day := now.Date()
	for _, candidate := range candidates {
		createdAt, ok := parseTime(candidate.CreatedAt)
		if !ok {
			continue
		}
		cy, cm, cd := createdAt.In(now.Location()).Date()
		if cy == year && cm == month && cd == day {
			stats.NewToday++
		}
	}
	return stats
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(value string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
