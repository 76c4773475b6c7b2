package session

import (
	"context"

	"github.com/designdesk/session-gateway/internal/entity"
)

type SessionUsecase interface {
	SubmitUserMessage(ctx context.Context, sessionID, text string) error
	UpdateDraft(ctx context.Context, sessionID string, req *entity.UpdateDraftRequest) entity.SessionView
	SubmitDraft(ctx context.Context, sessionID string) (*entity.Requirement, error)
	GetSession(ctx context.Context, sessionID string) entity.SessionView
	AttachReferenceImage(ctx context.Context, sessionID, filename, contentType string, data []byte) (string, error)
	RemoveReferenceImage(ctx context.Context, sessionID, imageID string) error
}
