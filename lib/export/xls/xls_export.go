package xlsexport

import (
	"bytes"
	"recruit-portal/models"
	candidateapimodels "recruit-portal/models/api/candidate"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportCandidateReport(report models.ReportData, list []candidateapimodels.Candidate) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	summarySheet    = "Summary"
	candidatesSheet = "Candidates"
)

var (
	summaryColumns = []column{
		{title: "Group", width: 16},
		{title: "Value", width: 28},
		{title: "Candidates", width: 14},
	}
	candidateColumns = []column{
		{title: "Full name", width: 26},
		{title: "Email", width: 30},
		{title: "Phone", width: 18},
		{title: "Job title", width: 26},
		{title: "Department", width: 20},
		{title: "Status", width: 16},
		{title: "Applied", width: 22},
	}
)

func (i impl) ExportCandidateReport(report models.ReportData, list []candidateapimodels.Candidate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	styles, err := newSheetStyles(f)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания стилей xlsx")
	}

	if err = f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	row, err := writeHeader(f, summarySheet, styles, summaryColumns)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if _, err = writeSummaryData(f, summarySheet, styles, report, row); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования сводной таблицы в xlsx")
	}

	if _, err = f.NewSheet(candidatesSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка создания листа в xlsx")
	}
	row, err = writeHeader(f, candidatesSheet, styles, candidateColumns)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if _, err = writeCandidateData(f, candidatesSheet, styles, list, row); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
	}
	return f.WriteToBuffer()
}

// writeSummaryData итог, время формирования, затем группы по статусу и отделу
func writeSummaryData(f *excelize.File, sheet string, styles sheetStyles, report models.ReportData, row int) (int, error) {
	firstRow := row + 1
	row++
	if err := writeRow(f, sheet, row, "Total", "All candidates", report.TotalCandidates); err != nil {
		return row, err
	}
	if report.GeneratedAt != "" {
		row++
		if err := writeRow(f, sheet, row, "Generated at", report.GeneratedAt, ""); err != nil {
			return row, err
		}
	}
	for _, group := range []struct {
		name   string
		values map[string]int
	}{
		{"Status", report.ByStatus},
		{"Department", report.ByDepartment},
	} {
		for _, key := range sortedKeys(group.values) {
			row++
			if err := writeRow(f, sheet, row, group.name, key, group.values[key]); err != nil {
				return row, err
			}
		}
	}
	if err := applyStyle(f, sheet, styles.data, 1, firstRow, 2, row); err != nil {
		return row, err
	}
	if err := applyStyle(f, sheet, styles.number, 3, firstRow, 3, row); err != nil {
		return row, err
	}
	return row, nil
}

func writeCandidateData(f *excelize.File, sheet string, styles sheetStyles, list []candidateapimodels.Candidate, row int) (int, error) {
	firstRow := row + 1
	for _, item := range list {
		row++
		err := writeRow(f, sheet, row,
			item.Fullname,
			item.Email,
			item.PhoneNumber,
			item.JobTitle,
			item.Department,
			item.Status.String(),
			item.CreatedAt,
		)
		if err != nil {
			return row, err
		}
	}
	if err := applyStyle(f, sheet, styles.data, 1, firstRow, len(candidateColumns), row); err != nil {
		return row, err
	}
	return row, nil
}
