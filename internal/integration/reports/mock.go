package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GetDesignerStats(ctx context.Context, rng *entity.StatsRange) ([]entity.DesignerStats, error) {
	ctxzap.Info(ctx, "[MOCK] fetching designer stats",
		zap.String("start_date", rng.StartDate),
		zap.String("end_date", rng.EndDate),
	)

	stats := []entity.DesignerStats{
		{DesignerID: 1, DesignerName: "Ada Reyes", TotalTasks: 12, CompletedTasks: 9, TotalHours: 41.5, AvgHoursPerTask: 4.6},
		{DesignerID: 2, DesignerName: "Marcus Lindholm", TotalTasks: 7, CompletedTasks: 7, TotalHours: 22.0, AvgHoursPerTask: 3.1},
	}

	if rng.DesignerID == nil {
		return stats, nil
	}
	for _, s := range stats {
		if s.DesignerID == *rng.DesignerID {
			return []entity.DesignerStats{s}, nil
		}
	}
	return []entity.DesignerStats{}, nil
}

func (m *MockConnector) ExportExcel(ctx context.Context, rng *entity.StatsRange) ([]byte, string, error) {
	ctxzap.Info(ctx, "[MOCK] exporting designer stats workbook")

	stats, err := m.GetDesignerStats(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Designer", "Total Tasks", "Completed", "Total Hours", "Avg Hours"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("write header: %w", err)
		}
	}
	for row, s := range stats {
		values := []any{s.DesignerName, s.TotalTasks, s.CompletedTasks, s.TotalHours, s.AvgHoursPerTask}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("serialize workbook: %w", err)
	}

	return buf.Bytes(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}
