package session

import (
	"context"

	"github.com/designdesk/session-gateway/internal/entity"
)

// Session-id addressed facade over the controller map. The HTTP layer talks
// to these; controllers stay an internal detail of this package.

func (m *Manager) SubmitUserMessage(ctx context.Context, sessionID, text string) error {
	return m.GetOrCreate(sessionID).SubmitUserMessage(ctx, text)
}

func (m *Manager) UpdateDraft(ctx context.Context, sessionID string, req *entity.UpdateDraftRequest) entity.SessionView {
	return m.GetOrCreate(sessionID).UpdateDraft(ctx, req)
}

func (m *Manager) SubmitDraft(ctx context.Context, sessionID string) (*entity.Requirement, error) {
	return m.GetOrCreate(sessionID).SubmitDraft(ctx)
}

func (m *Manager) GetSession(ctx context.Context, sessionID string) entity.SessionView {
	return m.GetOrCreate(sessionID).View()
}

func (m *Manager) AttachReferenceImage(ctx context.Context, sessionID, filename, contentType string, data []byte) (string, error) {
	return m.GetOrCreate(sessionID).AttachReferenceImage(filename, contentType, data)
}

func (m *Manager) RemoveReferenceImage(ctx context.Context, sessionID, imageID string) error {
	return m.GetOrCreate(sessionID).RemoveReferenceImage(ctx, imageID)
}
