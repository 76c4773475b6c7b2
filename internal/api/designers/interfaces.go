package designers

import (
	"context"

	"github.com/designdesk/session-gateway/internal/entity"
)

type DesignersConnector interface {
	GetDesigners(ctx context.Context) ([]entity.Designer, error)
	GetMyDesigner(ctx context.Context) (*entity.Designer, error)
}
