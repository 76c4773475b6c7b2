package session

import (
	"context"

	"github.com/designdesk/session-gateway/internal/entity"
)

type RequirementsConnector interface {
	Create(ctx context.Context, req *entity.CreateRequirementRequest) (*entity.Requirement, error)
}
