package statusworkflow

import (
	"context"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"recruit-portal/lib/backend/client"
	candidatelist "recruit-portal/lib/candidates/list"
	messagetemplate "recruit-portal/lib/message-template"
	"recruit-portal/lib/metrics"
	"recruit-portal/models"
	candidateapimodels "recruit-portal/models/api/candidate"
	wsmodels "recruit-portal/models/ws"
	"strings"
	"sync"
)

type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhasePreviewLoading Phase = "preview_loading"
	PhaseEditable       Phase = "editable"
	PhaseCommitting     Phase = "committing"
	PhaseFailed         Phase = "failed"
)

const (
	CommitFailedMessage  = "Failed to update status. Please try again."
	CommitSuccessMessage = "Status updated and email sent successfully!"
)

var (
	ErrInvalidStatus  = errors.New("Invalid status value")
	ErrCommitInFlight = errors.New("Status update is already in progress")
	ErrNotOpen        = errors.New("No status change in progress")
	ErrStalePreview   = errors.New("preview ticket is no longer current")
)

// Backend операции бэкенда, нужные процессу смены статуса
type Backend interface {
	EmailPreview(ctx context.Context, accessToken, candidateID string, status models.CandidateStatus) (string, error)
	UpdateCandidateStatus(ctx context.Context, accessToken, candidateID string, request candidateapimodels.StatusUpdateRequest) (*candidateapimodels.Candidate, error)
}

type TokenSource interface {
	AccessToken() string
}

type Notifier interface {
	SendMessage(msg wsmodels.ServerMessage)
}

// PreviewTicket привязывает результат загрузки превью к конкретному открытию окна
type PreviewTicket struct {
	CandidateID string
	Status      models.CandidateStatus
	generation  uint64
}

type statusChangeRequest struct {
	CandidateID   string
	CandidateName string
	JobTitle      string
	OldStatus     models.CandidateStatus
	NewStatus     models.CandidateStatus
	EmailContent  string
	EmailDetails  candidateapimodels.EmailDetails
}

type View struct {
	Phase         Phase                           `json:"phase"`
	IsOpen        bool                            `json:"isOpen"`
	Loading       bool                            `json:"loading"`
	CandidateID   string                          `json:"candidateId,omitempty"`
	CandidateName string                          `json:"candidateName,omitempty"`
	OldStatus     models.CandidateStatus          `json:"oldStatus,omitempty"`
	NewStatus     models.CandidateStatus          `json:"newStatus,omitempty"`
	EmailContent  string                          `json:"emailContent,omitempty"`
	EmailDetails  candidateapimodels.EmailDetails `json:"emailDetails"`
	Error         string                          `json:"error,omitempty"`
}

type Config struct {
	ClientID string
	Backend  Backend
	List     *candidatelist.List
	Tokens   TokenSource
	Notifier Notifier
	// OnCommitted вызывается после успешной смены статуса
	OnCommitted func(candidate candidateapimodels.Candidate)
}

// Workflow смена статуса кандидата с письмом, один экземпляр на клиента
type Workflow struct {
	cfg Config

	mu         sync.Mutex
	phase      Phase
	failure    string
	generation uint64
	inFlight   bool
	req        statusChangeRequest
}

func New(cfg Config) *Workflow {
	return &Workflow{
		cfg:   cfg,
		phase: PhaseIdle,
	}
}

func (w *Workflow) logger() *log.Entry {
	return log.WithField("client_id", w.cfg.ClientID)
}

// Initiate opened=false, если кандидата нет в локальном списке
func (w *Workflow) Initiate(candidateID string, newStatus models.CandidateStatus) (PreviewTicket, bool, error) {
	if !newStatus.IsValid() {
		return PreviewTicket{}, false, errors.Wrapf(ErrInvalidStatus, "%v", newStatus)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return PreviewTicket{}, false, ErrCommitInFlight
	}
	candidate, ok := w.cfg.List.Find(candidateID)
	if !ok {
		return PreviewTicket{}, false, nil
	}

	content, err := messagetemplate.BuildStatusDefaultMsg(models.StatusEmailTemplateData{
		CandidateName: candidate.Fullname,
		JobTitle:      candidate.JobTitle,
		Status:        newStatus,
	})
	if err != nil {
		w.logger().WithError(err).Error("ошибка формирования текста письма")
	}

	w.generation++
	w.failure = ""
	w.phase = PhasePreviewLoading
	w.req = statusChangeRequest{
		CandidateID:   candidateID,
		CandidateName: candidate.Fullname,
		JobTitle:      candidate.JobTitle,
		OldStatus:     candidate.Status,
		NewStatus:     newStatus,
		EmailContent:  content,
		EmailDetails: candidateapimodels.EmailDetails{
			RecipientEmail: candidate.Email,
			RecipientName:  candidate.Fullname,
			Subject:        messagetemplate.GetStatusUpdateTitle(),
		},
	}
	return PreviewTicket{
		CandidateID: candidateID,
		Status:      newStatus,
		generation:  w.generation,
	}, true, nil
}

// LoadPreview превью бэкенда заменяет текст только если он пустой
func (w *Workflow) LoadPreview(ctx context.Context, ticket PreviewTicket) error {
	w.mu.Lock()
	if !w.isCurrent(ticket) {
		w.mu.Unlock()
		return ErrStalePreview
	}
	w.mu.Unlock()

	preview, fetchErr := w.cfg.Backend.EmailPreview(ctx, "", ticket.CandidateID, ticket.Status)
	if fetchErr != nil {
		w.logger().
			WithField("candidate_id", ticket.CandidateID).
			WithError(fetchErr).
			Warn("не удалось получить превью письма")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.isCurrent(ticket) || w.phase == PhaseCommitting {
		metrics.PreviewFetchTotal.WithLabelValues("discarded").Inc()
		return ErrStalePreview
	}
	if strings.TrimSpace(w.req.EmailContent) == "" {
		w.req.EmailContent = w.previewContent(preview, fetchErr)
	}
	if fetchErr != nil {
		metrics.PreviewFetchTotal.WithLabelValues("failed").Inc()
	} else {
		metrics.PreviewFetchTotal.WithLabelValues("ok").Inc()
	}
	if w.phase == PhasePreviewLoading {
		w.phase = PhaseEditable
	}
	return nil
}

func (w *Workflow) previewContent(preview string, fetchErr error) string {
	data := models.StatusEmailTemplateData{
		CandidateName: w.req.CandidateName,
		Status:        w.req.NewStatus,
	}
	candidate, found := w.cfg.List.Find(w.req.CandidateID)
	if found {
		data.CandidateName = candidate.Fullname
		data.JobTitle = candidate.JobTitle
	}
	var content string
	var err error
	switch {
	case fetchErr != nil:
		if !found {
			return w.req.EmailContent
		}
		content, err = messagetemplate.BuildStatusFailureFallbackMsg(data)
	case strings.TrimSpace(preview) == "":
		content, err = messagetemplate.BuildStatusPreviewFallbackMsg(data)
	default:
		return preview
	}
	if err != nil {
		w.logger().WithError(err).Error("ошибка формирования текста письма")
		return w.req.EmailContent
	}
	return content
}

func (w *Workflow) EditContent(content string) error {
	return w.edit(func(req *statusChangeRequest) {
		req.EmailContent = content
	})
}

func (w *Workflow) EditRecipient(email, name string) error {
	return w.edit(func(req *statusChangeRequest) {
		req.EmailDetails.RecipientEmail = strings.TrimSpace(email)
		req.EmailDetails.RecipientName = name
	})
}

func (w *Workflow) EditSubject(subject string) error {
	return w.edit(func(req *statusChangeRequest) {
		req.EmailDetails.Subject = subject
	})
}

func (w *Workflow) edit(apply func(req *statusChangeRequest)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrCommitInFlight
	}
	if !w.isOpen() {
		return ErrNotOpen
	}
	apply(&w.req)
	if w.phase == PhaseFailed {
		w.phase = PhaseEditable
		w.failure = ""
	}
	return nil
}

// ConfirmCommit не больше одного запроса на смену статуса одновременно
func (w *Workflow) ConfirmCommit(ctx context.Context) (*candidateapimodels.Candidate, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, ErrCommitInFlight
	}
	if !w.isOpen() {
		w.mu.Unlock()
		return nil, ErrNotOpen
	}
	details := w.req.EmailDetails
	details.Content = w.req.EmailContent
	request := candidateapimodels.StatusUpdateRequest{
		Status:       w.req.NewStatus,
		EmailDetails: &details,
	}
	if err := request.Validate(); err != nil {
		w.phase = PhaseFailed
		w.failure = err.Error()
		w.mu.Unlock()
		metrics.StatusCommitsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	candidateID := w.req.CandidateID
	w.inFlight = true
	w.phase = PhaseCommitting
	w.mu.Unlock()

	logger := w.logger().
		WithField("candidate_id", candidateID).
		WithField("status", request.Status)
	token := ""
	if w.cfg.Tokens != nil {
		token = w.cfg.Tokens.AccessToken()
	}
	resp, err := w.cfg.Backend.UpdateCandidateStatus(ctx, token, candidateID, request)

	w.mu.Lock()
	w.inFlight = false
	if err != nil {
		w.phase = PhaseFailed
		w.failure = client.UserMessage(err, CommitFailedMessage)
		w.mu.Unlock()
		logger.WithError(err).Error("ошибка смены статуса кандидата")
		metrics.StatusCommitsTotal.WithLabelValues("failed").Inc()
		return nil, errors.Wrap(err, "ошибка смены статуса кандидата")
	}

	status := request.Status
	if resp != nil && resp.Status.IsValid() {
		status = resp.Status
	}
	w.cfg.List.SetStatus(candidateID, status)
	committed, _ := w.cfg.List.Find(candidateID)
	if committed.ID.IsEmpty() && resp != nil {
		committed = *resp
	}
	committed.Status = status
	w.reset()
	w.mu.Unlock()

	logger.Info("статус кандидата изменен, письмо отправлено")
	metrics.StatusCommitsTotal.WithLabelValues("success").Inc()
	if w.cfg.Notifier != nil {
		w.cfg.Notifier.SendMessage(wsmodels.ServerMessage{
			ToClientID: w.cfg.ClientID,
			Code:       wsmodels.EventCandidateStatusChanged,
			Msg:        CommitSuccessMessage,
			Data:       committed,
		})
	}
	if w.cfg.OnCommitted != nil {
		w.cfg.OnCommitted(committed)
	}
	return &committed, nil
}

// Cancel закрывает окно без обращения к бэкенду, во время отправки запрещен
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight {
		return ErrCommitInFlight
	}
	w.reset()
	return nil
}

func (w *Workflow) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	view := View{
		Phase:   w.phase,
		IsOpen:  w.isOpen(),
		Loading: w.phase == PhasePreviewLoading || w.phase == PhaseCommitting,
		Error:   w.failure,
	}
	if !view.IsOpen {
		return view
	}
	view.CandidateID = w.req.CandidateID
	view.CandidateName = w.req.CandidateName
	view.OldStatus = w.req.OldStatus
	view.NewStatus = w.req.NewStatus
	view.EmailContent = w.req.EmailContent
	view.EmailDetails = w.req.EmailDetails
	view.EmailDetails.Content = ""
	return view
}

func (w *Workflow) isOpen() bool {
	return w.phase != PhaseIdle
}

func (w *Workflow) isCurrent(ticket PreviewTicket) bool {
	return w.isOpen() &&
		ticket.generation == w.generation &&
		ticket.CandidateID == w.req.CandidateID &&
		ticket.Status == w.req.NewStatus
}

// reset новое поколение отбрасывает запоздавшие превью
func (w *Workflow) reset() {
	w.generation++
	w.phase = PhaseIdle
	w.failure = ""
	w.req = statusChangeRequest{}
}
