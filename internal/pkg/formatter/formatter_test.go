package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/xuri/excelize/v2"
)

var testStats = []entity.DesignerStats{
	{DesignerID: 1, DesignerName: "Ada Reyes", TotalTasks: 12, CompletedTasks: 9, TotalHours: 41.5, AvgHoursPerTask: 4.6},
	{DesignerID: 2, DesignerName: "Marcus Lindholm", TotalTasks: 7, CompletedTasks: 7, TotalHours: 22.0, AvgHoursPerTask: 3.1},
}

var testRange = &entity.StatsRange{StartDate: "2026-08-01", EndDate: "2026-08-31"}

func TestFactorySelectsFormatter(t *testing.T) {
	factory := NewFactory()

	xlsx, err := factory.Create(entity.FormatXLSX)
	if err != nil {
		t.Fatalf("xlsx formatter: %v", err)
	}
	if xlsx.FileExtension() != ".xlsx" {
		t.Fatalf("extension = %q", xlsx.FileExtension())
	}

	pdf, err := factory.Create(entity.FormatPDF)
	if err != nil {
		t.Fatalf("pdf formatter: %v", err)
	}
	if pdf.ContentType() != "application/pdf" {
		t.Fatalf("content type = %q", pdf.ContentType())
	}

	if _, err := factory.Create(entity.ReportFormat("csv")); err == nil {
		t.Fatal("unsupported format accepted")
	}
}

func TestXLSXFormatterWritesHeaderAndRows(t *testing.T) {
	payload, err := NewXLSXFormatter().Format(testStats, testRange)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("output is not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	for i, want := range statsHeaders {
		if rows[0][i] != want {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}
	if rows[1][0] != "Ada Reyes" {
		t.Fatalf("first data row = %v", rows[1])
	}
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	payload, err := NewPDFFormatter().Format(testStats, testRange)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
}

func TestBriefFormatterRendersRequirement(t *testing.T) {
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	hours := 6.5
	req := &entity.Requirement{
		ID:              42,
		Title:           "Sale Banner",
		RequirementType: entity.RequirementTypeBanner,
		Dimensions:      "1920x1080",
		Deadline:        &deadline,
		Copywriting:     "Summer sale, up to 50% off",
		AdditionalNotes: "Keep the brand palette",
		EstimatedHours:  &hours,
		Status:          entity.TaskStatusPending,
	}

	brief := NewBriefFormatter()
	payload, err := brief.Format(req)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("empty brief")
	}
	// DOCX files are ZIP containers.
	if !bytes.HasPrefix(payload, []byte("PK")) {
		t.Fatal("output is not a DOCX container")
	}
	if brief.FileExtension() != ".docx" {
		t.Fatalf("extension = %q", brief.FileExtension())
	}
}
