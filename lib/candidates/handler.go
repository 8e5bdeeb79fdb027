package candidateshandler

import (
	"context"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
	"recruit-portal/lib/backend/client"
	candidatelist "recruit-portal/lib/candidates/list"
	filestorage "recruit-portal/lib/file-storage"
	"recruit-portal/lib/metrics"
	candidateapimodels "recruit-portal/models/api/candidate"
	"time"
)

const (
	ResumeNotFoundMessage       = "Resume file not found on server"
	ResumeForbiddenMessage      = "Access denied to resume file"
	ResumeNetworkMessage        = "Network error while downloading resume"
	ResumeFailedMessage         = "Failed to download resume"
	CandidatesFailedMessage     = "Failed to fetch candidates"
	CandidateNotFoundMessage    = "Candidate not found"
	CandidateStatsFailedMessage = "Failed to fetch candidate statistics"
)

// Backend операции бэкенда по кандидатам
type Backend interface {
	ListCandidates(ctx context.Context, accessToken string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.Candidate, error)
	GetCandidate(ctx context.Context, accessToken, candidateID string) (*candidateapimodels.Candidate, error)
	DownloadResume(ctx context.Context, accessToken, fileName string) (*client.File, error)
}

type Provider interface {
	// Fetch загружает список с бэкенда в список клиента и возвращает страницу
	Fetch(ctx context.Context, clientID, accessToken string, filter candidateapimodels.CandidateFilter, page int) (candidateapimodels.CandidatePage, error)
	// Page страница уже загруженного списка
	Page(clientID string, page int) candidateapimodels.CandidatePage
	List(clientID string) *candidatelist.List
	Get(ctx context.Context, accessToken, candidateID string) (*candidateapimodels.Candidate, error)
	Invalidate(candidateID string)
	DownloadResume(ctx context.Context, accessToken, fileName string) (*client.File, error)
	DropClient(clientID string)
}

var Instance Provider

func NewHandler(backend Backend, mirror filestorage.Provider, cacheSize int, cacheTTL time.Duration) {
	Instance = New(backend, mirror, cacheSize, cacheTTL)
}

func New(backend Backend, mirror filestorage.Provider, cacheSize int, cacheTTL time.Duration) Provider {
	return &impl{
		backend: backend,
		mirror:  mirror,
		lists:   candidatelist.NewRegistry(),
		details: expirable.NewLRU[string, candidateapimodels.Candidate](cacheSize, nil, cacheTTL),
	}
}

type impl struct {
	backend Backend
	mirror  filestorage.Provider
	lists   *candidatelist.Registry
	details *expirable.LRU[string, candidateapimodels.Candidate]
}

func (i *impl) Fetch(ctx context.Context, clientID, accessToken string, filter candidateapimodels.CandidateFilter, page int) (candidateapimodels.CandidatePage, error) {
	items, err := i.backend.ListCandidates(ctx, accessToken, filter)
	if err != nil {
		log.WithField("client_id", clientID).WithError(err).Error("ошибка получения списка кандидатов")
		return candidateapimodels.CandidatePage{}, err
	}
	list := i.lists.Get(clientID)
	list.Replace(items)
	return list.Page(page), nil
}

func (i *impl) Page(clientID string, page int) candidateapimodels.CandidatePage {
	return i.lists.Get(clientID).Page(page)
}

func (i *impl) List(clientID string) *candidatelist.List {
	return i.lists.Get(clientID)
}

func (i *impl) Get(ctx context.Context, accessToken, candidateID string) (*candidateapimodels.Candidate, error) {
	if cached, ok := i.details.Get(candidateID); ok {
		metrics.CandidateCacheTotal.WithLabelValues("hit").Inc()
		return &cached, nil
	}
	metrics.CandidateCacheTotal.WithLabelValues("miss").Inc()
	candidate, err := i.backend.GetCandidate(ctx, accessToken, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: CandidateNotFoundMessage}
	}
	i.details.Add(candidateID, *candidate)
	return candidate, nil
}

func (i *impl) Invalidate(candidateID string) {
	i.details.Remove(candidateID)
}

func (i *impl) DownloadResume(ctx context.Context, accessToken, fileName string) (*client.File, error) {
	logger := log.WithField("file_name", fileName)
	if i.mirror != nil {
		file, found, err := i.mirror.GetResume(ctx, fileName)
		if err != nil {
			logger.WithError(err).Warn("не удалось получить копию резюме из S3")
		} else if found {
			return file, nil
		}
	}

	file, err := i.backend.DownloadResume(ctx, accessToken, fileName)
	if err != nil {
		logger.WithError(err).Error("ошибка скачивания резюме")
		return nil, resumeError(err)
	}
	if i.mirror != nil {
		if err := i.mirror.PutResume(ctx, *file); err != nil {
			logger.WithError(err).Warn("не удалось сохранить копию резюме в S3")
		}
	}
	return file, nil
}

func (i *impl) DropClient(clientID string) {
	i.lists.Drop(clientID)
}

func resumeError(err error) error {
	if errors.Is(err, client.ErrNoResponse) {
		return &client.APIError{StatusCode: http.StatusBadGateway, Message: ResumeNetworkMessage}
	}
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return &client.APIError{StatusCode: http.StatusBadGateway, Message: ResumeFailedMessage}
	}
	switch {
	case apiErr.IsNotFound():
		return &client.APIError{StatusCode: http.StatusNotFound, Message: ResumeNotFoundMessage}
	case apiErr.IsForbidden():
		return &client.APIError{StatusCode: http.StatusForbidden, Message: ResumeForbiddenMessage}
	}
	return &client.APIError{StatusCode: apiErr.StatusCode, Message: client.UserMessage(err, ResumeFailedMessage)}
}
