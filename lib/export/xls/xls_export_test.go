package xlsexport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"recruit-portal/models"
	candidateapimodels "recruit-portal/models/api/candidate"
)

func TestExportCandidateReport(t *testing.T) {
	t.Run(`summary and candidates sheets check`, func(t *testing.T) {
		report := models.ReportData{
			TotalCandidates: 3,
			ByStatus:        map[string]int{"Received": 2, "Interview": 1},
			ByDepartment:    map[string]int{"Engineering": 3},
		}
		list := []candidateapimodels.Candidate{
			{Fullname: "Jane Doe", Email: "jane@example.com", JobTitle: "Backend Engineer", Department: "Engineering", Status: models.CandidateInterview},
		}
		buf, err := impl{}.ExportCandidateReport(report, list)
		require.Nil(t, err)

		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		require.Equal(t, []string{"Summary", "Candidates"}, f.GetSheetList())

		value, err := f.GetCellValue("Summary", "C2")
		require.Nil(t, err)
		require.Equal(t, "3", value)
		value, err = f.GetCellValue("Summary", "B3")
		require.Nil(t, err)
		require.Equal(t, "Interview", value)
		value, err = f.GetCellValue("Summary", "B5")
		require.Nil(t, err)
		require.Equal(t, "Engineering", value)

		value, err = f.GetCellValue("Candidates", "A2")
		require.Nil(t, err)
		require.Equal(t, "Jane Doe", value)
		value, err = f.GetCellValue("Candidates", "F2")
		require.Nil(t, err)
		require.Equal(t, "Interview", value)
	})
}
