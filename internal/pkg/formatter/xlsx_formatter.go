package formatter

import (
	"bytes"
	"fmt"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxFileExtension = ".xlsx"

	xlsxSheetName = "Designer Stats"
)

type XLSXFormatter struct{}

func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

func (mf *XLSXFormatter) Format(stats []entity.DesignerStats, rng *entity.StatsRange) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range statsHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheetName, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(xlsxSheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for row, s := range stats {
		values := []any{s.DesignerName, s.TotalTasks, s.CompletedTasks, s.TotalHours, s.AvgHoursPerTask}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Widen the name column; the numeric columns fit the defaults.
	if err := f.SetColWidth(xlsxSheetName, "A", "A", 28); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (mf *XLSXFormatter) ContentType() string {
	return xlsxContentType
}

func (mf *XLSXFormatter) FileExtension() string {
	return xlsxFileExtension
}
