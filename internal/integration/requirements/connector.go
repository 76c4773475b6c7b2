package requirements

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
	config    config.RequirementsConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.RequirementsConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Create submits a new design request. The create is not idempotent: a
// timed-out request may already be persisted upstream, so it is sent exactly
// once, never through the retry wrapper.
func (c *Connector) Create(ctx context.Context, req *entity.CreateRequirementRequest) (*entity.Requirement, error) {
	ctxzap.Info(ctx, "creating requirement", zap.String("title", req.Title))

	var resp entity.Requirement
	if err := c.connector.DoRequest(ctx, http.MethodPost, "/requirements/", req, &resp); err != nil {
		return nil, fmt.Errorf("create requirement failed: %w", err)
	}

	ctxzap.Info(ctx, "requirement created", zap.Int64("requirement_id", resp.ID))

	return &resp, nil
}

// List fetches requirements, optionally filtered by status
func (c *Connector) List(ctx context.Context, req *entity.ListRequirementsRequest) ([]entity.Requirement, error) {
	ctxzap.Debug(ctx, "listing requirements", zap.String("status", string(req.Status)))

	opts := []pkghttp.RequestOpt{
		pkghttp.WithQueryParam("skip", strconv.Itoa(req.Skip)),
		pkghttp.WithQueryParam("limit", strconv.Itoa(req.Limit)),
	}
	if req.Status != "" {
		opts = append(opts, pkghttp.WithQueryParam("status", string(req.Status)))
	}

	var resp []entity.Requirement
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, "/requirements", nil, &resp, opts...)
	})
	if err != nil {
		return nil, fmt.Errorf("list requirements failed: %w", err)
	}

	return resp, nil
}

// Get fetches a single requirement by id
func (c *Connector) Get(ctx context.Context, id int64) (*entity.Requirement, error) {
	var resp entity.Requirement
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, fmt.Sprintf("/requirements/%d", id), nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("get requirement failed: %w", err)
	}

	return &resp, nil
}

// Update patches the given fields of a requirement. The patch sets absolute
// values, so replaying it on a network failure is safe.
func (c *Connector) Update(ctx context.Context, id int64, req *entity.UpdateRequirementRequest) (*entity.Requirement, error) {
	ctxzap.Info(ctx, "updating requirement", zap.Int64("requirement_id", id))

	var resp entity.Requirement
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPatch, fmt.Sprintf("/requirements/%d", id), req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("update requirement failed: %w", err)
	}

	return &resp, nil
}
