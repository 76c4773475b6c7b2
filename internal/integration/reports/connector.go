package reports

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/designdesk/session-gateway/internal/config"
	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/integration/common"
	pkghttp "github.com/designdesk/session-gateway/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.ReportsConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ReportsConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) GetDesignerStats(ctx context.Context, rng *entity.StatsRange) ([]entity.DesignerStats, error) {
	ctxzap.Debug(ctx, "fetching designer stats",
		zap.String("start_date", rng.StartDate),
		zap.String("end_date", rng.EndDate),
	)

	var resp []entity.DesignerStats
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, "/reports/designer-stats", nil, &resp, rangeOpts(rng)...)
	})
	if err != nil {
		return nil, fmt.Errorf("get designer stats failed: %w", err)
	}

	return resp, nil
}

// ExportExcel fetches the upstream-rendered workbook as an opaque payload.
func (c *Connector) ExportExcel(ctx context.Context, rng *entity.StatsRange) ([]byte, string, error) {
	ctxzap.Info(ctx, "exporting designer stats workbook",
		zap.String("start_date", rng.StartDate),
		zap.String("end_date", rng.EndDate),
	)

	var payload []byte
	var contentType string
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		var downloadErr error
		payload, contentType, downloadErr = c.connector.DoDownload(ctx, "/reports/export-excel", rangeOpts(rng)...)
		return downloadErr
	})
	if err != nil {
		return nil, "", fmt.Errorf("export excel failed: %w", err)
	}

	return payload, contentType, nil
}

func rangeOpts(rng *entity.StatsRange) []pkghttp.RequestOpt {
	opts := []pkghttp.RequestOpt{
		pkghttp.WithQueryParam("start_date", rng.StartDate),
		pkghttp.WithQueryParam("end_date", rng.EndDate),
	}
	if rng.DesignerID != nil {
		opts = append(opts, pkghttp.WithQueryParam("designer_id", strconv.FormatInt(*rng.DesignerID, 10)))
	}
	return opts
}
