package requirements

import (
	"context"

	"github.com/designdesk/session-gateway/internal/entity"
)

type RequirementsConnector interface {
	Create(ctx context.Context, req *entity.CreateRequirementRequest) (*entity.Requirement, error)
	List(ctx context.Context, req *entity.ListRequirementsRequest) ([]entity.Requirement, error)
	Get(ctx context.Context, id int64) (*entity.Requirement, error)
	Update(ctx context.Context, id int64, req *entity.UpdateRequirementRequest) (*entity.Requirement, error)
}
