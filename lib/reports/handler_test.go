package reportshandler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"recruit-portal/lib/backend/client"
	"recruit-portal/models"
	candidateapimodels "recruit-portal/models/api/candidate"
)

type fakeBackend struct{}

func (f fakeBackend) CandidateStats(ctx context.Context, accessToken string) (*candidateapimodels.CandidateStats, error) {
	return &candidateapimodels.CandidateStats{
		TotalCandidates: 2,
		ByStatus:        map[string]int{"Received": 2},
		ByDepartment:    map[string]int{"Engineering": 2},
	}, nil
}

func (f fakeBackend) ListCandidates(ctx context.Context, accessToken string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.Candidate, error) {
	return []candidateapimodels.Candidate{{Fullname: "Jane Doe"}, {Fullname: "John Roe"}}, nil
}

func (f fakeBackend) ExportJobsCSV(ctx context.Context, accessToken string) (*client.File, error) {
	return &client.File{Name: "jobs.csv", ContentType: "text/csv", Content: []byte("id,title\n")}, nil
}

func (f fakeBackend) ExportCandidatesCSV(ctx context.Context, accessToken string) (*client.File, error) {
	return &client.File{Name: "candidates.csv", ContentType: "text/csv", Content: []byte("id,fullname\n")}, nil
}

type recordingXLS struct {
	report models.ReportData
	count  int
}

func (r *recordingXLS) ExportCandidateReport(report models.ReportData, list []candidateapimodels.Candidate) (*bytes.Buffer, error) {
	r.report = report
	r.count = len(list)
	return bytes.NewBufferString("xlsx"), nil
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
}

func TestReports(t *testing.T) {
	t.Run(`xlsx report check`, func(t *testing.T) {
		xls := &recordingXLS{}
		file, err := New(fakeBackend{}, xls, fixedNow).CandidatesXLSX(context.TODO(), "token")
		require.Nil(t, err)
		require.Equal(t, "candidates-report-2026-10-18.xlsx", file.Name)
		require.Equal(t, xlsxContentType, file.ContentType)
		require.Equal(t, 2, xls.count)
		require.Equal(t, 2, xls.report.TotalCandidates)
		require.Equal(t, "2026-10-18 12:30", xls.report.GeneratedAt)
	})

	t.Run(`pdf report check`, func(t *testing.T) {
		file, err := New(fakeBackend{}, &recordingXLS{}, fixedNow).CandidatesPDF(context.TODO(), "token")
		require.Nil(t, err)
		require.Equal(t, pdfContentType, file.ContentType)
		require.True(t, bytes.HasPrefix(file.Content, []byte("%PDF-")))
	})

	t.Run(`csv passthrough check`, func(t *testing.T) {
		file, err := New(fakeBackend{}, &recordingXLS{}, fixedNow).JobsCSV(context.TODO(), "token")
		require.Nil(t, err)
		require.Equal(t, "jobs.csv", file.Name)
	})
}
