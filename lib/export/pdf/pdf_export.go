package pdfexport

import (
	"bytes"
	"fmt"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"recruit-portal/models"
	"sort"
)

const (
	reportTitle = "Candidate Report"
	colWidth    = 95
	rowHeight   = 8
)

// GenerateCandidateReport сводка по кандидатам, шрифты встроенные
func GenerateCandidateReport(report models.ReportData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateCandidateReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(reportTitle, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, reportTitle, "", 1, "L", false, 0, "")
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont("Helvetica", "", 11)
	if report.GeneratedAt != "" {
		pdf.CellFormat(0, rowHeight, tr(fmt.Sprintf("Generated at: %v", report.GeneratedAt)), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, rowHeight, fmt.Sprintf("Total candidates: %v", report.TotalCandidates), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeTable(pdf, tr, "By status", report.ByStatus)
	pdf.Ln(4)
	writeTable(pdf, tr, "By department", report.ByDepartment)

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *fpdf.Fpdf, tr func(string) string, title string, values map[string]int) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colWidth, rowHeight, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidth, rowHeight, "Candidates", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(values) == 0 {
		pdf.CellFormat(colWidth*2, rowHeight, "No data", "1", 1, "C", false, 0, "")
		return
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		pdf.CellFormat(colWidth, rowHeight, tr(key), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidth, rowHeight, fmt.Sprintf("%v", values[key]), "1", 1, "R", false, 0, "")
	}
}
