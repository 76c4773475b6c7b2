package reports

import (
	"context"

	"github.com/designdesk/session-gateway/internal/entity"
)

type ReportsConnector interface {
	GetDesignerStats(ctx context.Context, rng *entity.StatsRange) ([]entity.DesignerStats, error)
	ExportExcel(ctx context.Context, rng *entity.StatsRange) ([]byte, string, error)
}
