package xlsexport

import (
	"sort"

	"github.com/xuri/excelize/v2"
)

const (
	reportFont       = "Calibri"
	reportFontSize   = 11
	defaultColWidth  = 18
	headerFillColour = "DCE6F1"
)

// column заголовок и ширина колонки листа
type column struct {
	title string
	width float64
}

// sheetStyles стили создаются один раз на файл
type sheetStyles struct {
	header int
	data   int
	number int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	result := sheetStyles{}
	var err error
	result.header, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Family: reportFont, Size: reportFontSize},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColour}},
	})
	if err != nil {
		return result, err
	}
	result.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Family: reportFont, Size: reportFontSize},
	})
	if err != nil {
		return result, err
	}
	result.number, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Font:      &excelize.Font{Family: reportFont, Size: reportFontSize},
	})
	return result, err
}

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for idx, value := range values {
		if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader заголовок в первой строке листа, строка закрепляется при прокрутке
func writeHeader(f *excelize.File, sheet string, styles sheetStyles, columns []column) (int, error) {
	row := 1
	for idx, col := range columns {
		name, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return row, err
		}
		width := col.width
		if width == 0 {
			width = defaultColWidth
		}
		if err = f.SetColWidth(sheet, name, name, width); err != nil {
			return row, err
		}
		if err = writeColumn(f, sheet, idx+1, row, col.title); err != nil {
			return row, err
		}
	}
	if err := applyStyle(f, sheet, styles.header, 1, row, len(columns), row); err != nil {
		return row, err
	}
	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	return row, err
}

func applyStyle(f *excelize.File, sheet string, style, colFrom, rowFrom, colTo, rowTo int) error {
	if rowTo < rowFrom {
		return nil
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}

func sortedKeys(values map[string]int) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
