package tasks

import (
	"context"

	"github.com/designdesk/session-gateway/internal/entity"
)

type TasksConnector interface {
	Start(ctx context.Context, id int64) (*entity.TaskTransitionResult, error)
	SubmitReview(ctx context.Context, id int64) (*entity.TaskTransitionResult, error)
	RequestRevision(ctx context.Context, id int64) (*entity.TaskTransitionResult, error)
	Complete(ctx context.Context, id int64) (*entity.TaskTransitionResult, error)
	GetTimeLogs(ctx context.Context, id int64) ([]entity.TaskTimeLog, error)
}
