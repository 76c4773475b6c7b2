package formatter

import (
	"fmt"

	"github.com/designdesk/session-gateway/internal/entity"
)

const statsTitle = "Designer workload report"

// Column order matches the upstream Excel export so locally rendered
// reports and passthrough exports line up.
var statsHeaders = []string{"Designer", "Total Tasks", "Completed", "Total Hours", "Avg Hours"}

// StatsFormatter renders an aggregate stats table into a downloadable document.
type StatsFormatter interface {
	Format(stats []entity.DesignerStats, rng *entity.StatsRange) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ReportFormat) (StatsFormatter, error) {
	switch format {
	case entity.FormatXLSX:
		return NewXLSXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
