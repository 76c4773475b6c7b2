package designers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/designdesk/session-gateway/internal/config"
	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/integration/common"
	pkghttp "github.com/designdesk/session-gateway/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.DesignersConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.DesignersConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// GetDesigners lists everyone a request can be assigned to
func (c *Connector) GetDesigners(ctx context.Context) ([]entity.Designer, error) {
	ctxzap.Debug(ctx, "fetching designer directory")

	var resp []entity.Designer
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, "/designers", nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("get designers failed: %w", err)
	}

	return resp, nil
}

// GetMyDesigner returns the default designer binding for the current operator
func (c *Connector) GetMyDesigner(ctx context.Context) (*entity.Designer, error) {
	ctxzap.Debug(ctx, "fetching default designer binding")

	var resp entity.Designer
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, "/designers/me", nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("get my designer failed: %w", err)
	}

	ctxzap.Debug(ctx, "default designer resolved", zap.Int64("designer_id", resp.ID))

	return &resp, nil
}
