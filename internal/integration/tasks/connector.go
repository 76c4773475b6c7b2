package tasks

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

// Connector triggers task-status transitions. Transition preconditions are
// owned by the Tasks service; this side only propagates its verdict.
type Connector struct {
	config    config.TasksConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.TasksConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) Start(ctx context.Context, id int64) (*entity.TaskTransitionResult, error) {
	return c.transition(ctx, id, "start")
}

func (c *Connector) SubmitReview(ctx context.Context, id int64) (*entity.TaskTransitionResult, error) {
	return c.transition(ctx, id, "submit-review")
}

func (c *Connector) RequestRevision(ctx context.Context, id int64) (*entity.TaskTransitionResult, error) {
	return c.transition(ctx, id, "request-revision")
}

func (c *Connector) Complete(ctx context.Context, id int64) (*entity.TaskTransitionResult, error) {
	return c.transition(ctx, id, "complete")
}

func (c *Connector) GetTimeLogs(ctx context.Context, id int64) ([]entity.TaskTimeLog, error) {
	var resp []entity.TaskTimeLog
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/time-logs", id), nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("get time logs failed: %w", err)
	}

	return resp, nil
}

func (c *Connector) transition(ctx context.Context, id int64, action string) (*entity.TaskTransitionResult, error) {
	ctxzap.Info(ctx, "triggering task transition",
		zap.Int64("requirement_id", id),
		zap.String("transition", action),
	)

	var resp entity.TaskTransitionResult
	err := common.DoWithRetry(ctx, &c.config.Retry, func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/%s", id, action), nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("task transition %s failed: %w", action, err)
	}

	ctxzap.Info(ctx, "task transition done", zap.String("status", string(resp.Status)))

	return &resp, nil
}
