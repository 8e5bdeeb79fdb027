package reportshandler

import (
	"bytes"
	"context"
	"github.com/pkg/errors"
	"recruit-portal/lib/backend/client"
	pdfexport "recruit-portal/lib/export/pdf"
	xlsexport "recruit-portal/lib/export/xls"
	"recruit-portal/models"
	candidateapimodels "recruit-portal/models/api/candidate"
	"time"
)

const (
	ReportFailedMessage = "Failed to generate report"
	ExportFailedMessage = "Failed to export data"
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType      = "application/pdf"
)

type Backend interface {
	CandidateStats(ctx context.Context, accessToken string) (*candidateapimodels.CandidateStats, error)
	ListCandidates(ctx context.Context, accessToken string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.Candidate, error)
	ExportJobsCSV(ctx context.Context, accessToken string) (*client.File, error)
	ExportCandidatesCSV(ctx context.Context, accessToken string) (*client.File, error)
}

type Provider interface {
	CandidateStats(ctx context.Context, accessToken string) (*candidateapimodels.CandidateStats, error)
	JobsCSV(ctx context.Context, accessToken string) (*client.File, error)
	CandidatesCSV(ctx context.Context, accessToken string) (*client.File, error)
	CandidatesXLSX(ctx context.Context, accessToken string) (*client.File, error)
	CandidatesPDF(ctx context.Context, accessToken string) (*client.File, error)
}

var Instance Provider

func NewHandler(backend Backend, xls xlsexport.Provider) {
	Instance = New(backend, xls, time.Now)
}

func New(backend Backend, xls xlsexport.Provider, now func() time.Time) Provider {
	return impl{
		backend: backend,
		xls:     xls,
		now:     now,
	}
}

type impl struct {
	backend Backend
	xls     xlsexport.Provider
	now     func() time.Time
}

func (i impl) CandidateStats(ctx context.Context, accessToken string) (*candidateapimodels.CandidateStats, error) {
	return i.backend.CandidateStats(ctx, accessToken)
}

func (i impl) JobsCSV(ctx context.Context, accessToken string) (*client.File, error) {
	return i.backend.ExportJobsCSV(ctx, accessToken)
}

func (i impl) CandidatesCSV(ctx context.Context, accessToken string) (*client.File, error) {
	return i.backend.ExportCandidatesCSV(ctx, accessToken)
}

func (i impl) CandidatesXLSX(ctx context.Context, accessToken string) (*client.File, error) {
	report, err := i.reportData(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	list, err := i.backend.ListCandidates(ctx, accessToken, candidateapimodels.CandidateFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка кандидатов")
	}
	var buf *bytes.Buffer
	buf, err = i.xls.ExportCandidateReport(report, list)
	if err != nil {
		return nil, err
	}
	return &client.File{
		Name:        i.fileName("xlsx"),
		ContentType: xlsxContentType,
		Content:     buf.Bytes(),
	}, nil
}

func (i impl) CandidatesPDF(ctx context.Context, accessToken string) (*client.File, error) {
	report, err := i.reportData(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	content, err := pdfexport.GenerateCandidateReport(report)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf отчета")
	}
	return &client.File{
		Name:        i.fileName("pdf"),
		ContentType: pdfContentType,
		Content:     content,
	}, nil
}

func (i impl) reportData(ctx context.Context, accessToken string) (models.ReportData, error) {
	stats, err := i.backend.CandidateStats(ctx, accessToken)
	if err != nil {
		return models.ReportData{}, errors.Wrap(err, "ошибка получения статистики кандидатов")
	}
	return models.ReportData{
		TotalCandidates: stats.TotalCandidates,
		ByStatus:        stats.ByStatus,
		ByDepartment:    stats.ByDepartment,
		GeneratedAt:     i.now().Format("2006-01-02 15:04"),
	}, nil
}

func (i impl) fileName(ext string) string {
	return "candidates-report-" + i.now().Format("2006-01-02") + "." + ext
}
