package tasks

import (
	"context"
	"time"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
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

func (m *MockConnector) Start(ctx context.Context, id int64) (*entity.TaskTransitionResult, error) {
	return m.transition(ctx, id, entity.TaskStatusInProgress)
}

func (m *MockConnector) SubmitReview(ctx context.Context, id int64) (*entity.TaskTransitionResult, error) {
	return m.transition(ctx, id, entity.TaskStatusUnderReview)
}

func (m *MockConnector) RequestRevision(ctx context.Context, id int64) (*entity.TaskTransitionResult, error) {
	return m.transition(ctx, id, entity.TaskStatusRevising)
}

func (m *MockConnector) Complete(ctx context.Context, id int64) (*entity.TaskTransitionResult, error) {
	return m.transition(ctx, id, entity.TaskStatusCompleted)
}

func (m *MockConnector) GetTimeLogs(ctx context.Context, id int64) ([]entity.TaskTimeLog, error) {
	ctxzap.Info(ctx, "[MOCK] fetching time logs", zap.Int64("requirement_id", id))

	now := time.Now().UTC()
	return []entity.TaskTimeLog{
		{ID: 1, RequirementID: id, Action: "start", Timestamp: now.Add(-4 * time.Hour)},
		{ID: 2, RequirementID: id, Action: "pause", Timestamp: now.Add(-1 * time.Hour), AccumulatedHours: 3.0},
		{ID: 3, RequirementID: id, Action: "complete", Timestamp: now, AccumulatedHours: 3.0},
	}, nil
}

func (m *MockConnector) transition(ctx context.Context, id int64, status entity.TaskStatus) (*entity.TaskTransitionResult, error) {
	ctxzap.Info(ctx, "[MOCK] task transition",
		zap.Int64("requirement_id", id),
		zap.String("status", string(status)),
	)

	return &entity.TaskTransitionResult{
		Message: "ok",
		Status:  status,
	}, nil
}
