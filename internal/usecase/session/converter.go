package session

import "github.com/designdesk/session-gateway/internal/entity"

// viewLocked snapshots the reconciled state. Caller holds the mutex; slices
// are copied so handlers can encode without racing the read loop.
func (c *Controller) viewLocked() entity.SessionView {
	draft := c.draft
	draft.ReferenceImages = append([]entity.ReferenceImage(nil), c.draft.ReferenceImages...)

	return entity.SessionView{
		SessionID:        c.id,
		Draft:            draft,
		ConversationID:   c.conv.ConversationID,
		Messages:         append([]entity.ChatMessage(nil), c.conv.Messages...),
		MissingFields:    append([]string(nil), c.conv.MissingFields...),
		IsComplete:       c.conv.IsComplete,
		DesignSpecHints:  append([]string(nil), c.conv.DesignSpecHints...),
		ConnectionStatus: c.conv.ConnectionStatus,
		AwaitingReply:    c.conv.AwaitingReply,
	}
}
