package designers

import (
	"context"

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

func (m *MockConnector) GetDesigners(ctx context.Context) ([]entity.Designer, error) {
	ctxzap.Info(ctx, "[MOCK] fetching designer directory")

	return []entity.Designer{
		{ID: 1, FullName: "Ada Reyes"},
		{ID: 2, FullName: "Marcus Lindholm"},
		{ID: 3, FullName: "Yuki Tanaka"},
	}, nil
}

func (m *MockConnector) GetMyDesigner(ctx context.Context) (*entity.Designer, error) {
	ctxzap.Info(ctx, "[MOCK] fetching default designer binding")

	designer := entity.Designer{ID: 1, FullName: "Ada Reyes"}
	ctxzap.Info(ctx, "[MOCK] default designer resolved", zap.Int64("designer_id", designer.ID))
	return &designer, nil
}
