package requirements

import (
	"context"
	"sync"
	"time"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector keeps created requirements in memory for local development.
type MockConnector struct {
	mu     sync.Mutex
	nextID int64
	items  []entity.Requirement
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		nextID: 1,
		logger: logger,
	}
}

func (m *MockConnector) Create(ctx context.Context, req *entity.CreateRequirementRequest) (*entity.Requirement, error) {
	ctxzap.Info(ctx, "[MOCK] creating requirement", zap.String("title", req.Title))

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	created := entity.Requirement{
		ID:              m.nextID,
		Title:           req.Title,
		RequirementType: req.RequirementType,
		Dimensions:      req.Dimensions,
		Deadline:        req.Deadline,
		Copywriting:     req.Copywriting,
		ReferenceImages: req.ReferenceImages,
		AdditionalNotes: req.AdditionalNotes,
		RequesterID:     1,
		DesignerID:      req.DesignerID,
		EstimatedHours:  req.EstimatedHours,
		Status:          entity.TaskStatusPending,
		CreatedAt:       &now,
		UpdatedAt:       &now,
	}
	m.nextID++
	m.items = append(m.items, created)

	return &created, nil
}

func (m *MockConnector) List(ctx context.Context, req *entity.ListRequirementsRequest) ([]entity.Requirement, error) {
	ctxzap.Info(ctx, "[MOCK] listing requirements")

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.Requirement
	for _, item := range m.items {
		if req.Status != "" && item.Status != req.Status {
			continue
		}
		out = append(out, item)
	}

	if req.Skip >= len(out) {
		return []entity.Requirement{}, nil
	}
	out = out[req.Skip:]
	if req.Limit > 0 && req.Limit < len(out) {
		out = out[:req.Limit]
	}
	return out, nil
}

func (m *MockConnector) Get(ctx context.Context, id int64) (*entity.Requirement, error) {
	ctxzap.Info(ctx, "[MOCK] fetching requirement", zap.Int64("requirement_id", id))

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, entity.ErrUpstreamFailure
}

func (m *MockConnector) Update(ctx context.Context, id int64, req *entity.UpdateRequirementRequest) (*entity.Requirement, error) {
	ctxzap.Info(ctx, "[MOCK] updating requirement", zap.Int64("requirement_id", id))

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if req.Title != nil {
			m.items[i].Title = *req.Title
		}
		if req.RequirementType != nil {
			m.items[i].RequirementType = *req.RequirementType
		}
		if req.Dimensions != nil {
			m.items[i].Dimensions = *req.Dimensions
		}
		if req.Copywriting != nil {
			m.items[i].Copywriting = *req.Copywriting
		}
		if req.DesignerID != nil {
			m.items[i].DesignerID = req.DesignerID
		}
		now := time.Now().UTC()
		m.items[i].UpdatedAt = &now
		return &m.items[i], nil
	}
	return nil, entity.ErrUpstreamFailure
}
