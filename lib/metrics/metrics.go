package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionGuardTotal решения проверки сессии
	SessionGuardTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_session_guard_total",
			Help: "Количество проверок сессии по результату и причине",
		},
		[]string{"result", "reason"},
	)

	StatusCommitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_status_commits_total",
			Help: "Количество попыток смены статуса кандидата",
		},
		[]string{"result"},
	)

	PreviewFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_email_preview_total",
			Help: "Загрузки превью письма: ok, failed, discarded",
		},
		[]string{"result"},
	)

	PollTicksSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_poll_ticks_skipped_total",
			Help: "Пропущенные запуски периодических задач, пока предыдущий еще выполняется",
		},
		[]string{"task"},
	)

	CandidateCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_candidate_cache_total",
			Help: "Обращения к кэшу карточек кандидатов",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Общее количество HTTP-запросов к порталу",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к порталу в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
