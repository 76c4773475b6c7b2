package session

import (
	"context"
	"encoding/json"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/sessionstore"
	"go.uber.org/zap"
)

// persistLocked writes the named keys to the durable cache. Caller holds the
// mutex. Write failures are logged and ignored: caching is best-effort and
// unsynchronized with the network.
func (c *Controller) persistLocked(ctx context.Context, keys ...string) {
	values := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, err := c.marshalKeyLocked(key)
		if err != nil {
			c.logger.Warn("marshal session value failed", zap.String("key", key), zap.Error(err))
			continue
		}
		values[key] = raw
	}

	if err := c.store.Save(ctx, c.id, values); err != nil {
		c.logger.Warn("save session cache failed", zap.Error(err))
	}
}

func (c *Controller) marshalKeyLocked(key string) (json.RawMessage, error) {
	switch key {
	case sessionstore.KeyDraft:
		return json.Marshal(c.draft)
	case sessionstore.KeyMessages:
		return json.Marshal(c.conv.Messages)
	case sessionstore.KeyConversationID:
		return json.Marshal(c.conv.ConversationID)
	case sessionstore.KeyMissingFields:
		return json.Marshal(c.conv.MissingFields)
	case sessionstore.KeyDesignSpecs:
		return json.Marshal(c.conv.DesignSpecHints)
	case sessionstore.KeyIsComplete:
		return json.Marshal(c.conv.IsComplete)
	}
	return nil, entity.ErrInvalidParameter
}

// restore rebuilds state from the durable cache. Each field falls back to its
// default on a malformed value; a broken entry never fails the whole restore.
func (c *Controller) restore(ctx context.Context) {
	values, err := c.store.Load(ctx, c.id)
	if err != nil {
		c.logger.Warn("load session cache failed, starting fresh", zap.Error(err))
		return
	}
	if len(values) == 0 {
		return
	}

	if raw, ok := values[sessionstore.KeyDraft]; ok {
		var draft entity.RequirementDraft
		if err := json.Unmarshal(raw, &draft); err == nil {
			if draft.ReferenceImages == nil {
				draft.ReferenceImages = []entity.ReferenceImage{}
			}
			c.draft = draft
		} else {
			c.logger.Warn("malformed cached draft ignored", zap.Error(err))
		}
	}

	if raw, ok := values[sessionstore.KeyMessages]; ok {
		var messages []entity.ChatMessage
		if err := json.Unmarshal(raw, &messages); err == nil && messages != nil {
			c.conv.Messages = messages
		} else if err != nil {
			c.logger.Warn("malformed cached messages ignored", zap.Error(err))
		}
	}

	if raw, ok := values[sessionstore.KeyConversationID]; ok {
		var conversationID string
		if err := json.Unmarshal(raw, &conversationID); err == nil {
			c.conv.ConversationID = conversationID
		} else {
			c.logger.Warn("malformed cached conversation id ignored", zap.Error(err))
		}
	}

	if raw, ok := values[sessionstore.KeyMissingFields]; ok {
		var missing []string
		if err := json.Unmarshal(raw, &missing); err == nil && missing != nil {
			c.conv.MissingFields = missing
		} else if err != nil {
			c.logger.Warn("malformed cached missing fields ignored", zap.Error(err))
		}
	}

	if raw, ok := values[sessionstore.KeyDesignSpecs]; ok {
		var hints []string
		if err := json.Unmarshal(raw, &hints); err == nil && hints != nil {
			c.conv.DesignSpecHints = hints
		} else if err != nil {
			c.logger.Warn("malformed cached design specs ignored", zap.Error(err))
		}
	}

	if raw, ok := values[sessionstore.KeyIsComplete]; ok {
		var complete bool
		if err := json.Unmarshal(raw, &complete); err == nil {
			c.conv.IsComplete = complete
		} else {
			c.logger.Warn("malformed cached completeness flag ignored", zap.Error(err))
		}
	}

	c.logger.Info("session restored from cache",
		zap.Int("messages", len(c.conv.Messages)),
		zap.String("conversation_id", c.conv.ConversationID),
	)
}

// buildCreateRequest maps the draft to the Requirements create payload. A
// draft without a requirement type is submitted as "other"; images still
// waiting for their encoding are skipped.
func buildCreateRequest(draft *entity.RequirementDraft) *entity.CreateRequirementRequest {
	requirementType := draft.RequirementType
	if requirementType == "" {
		requirementType = entity.RequirementTypeOther
	}

	images := make([]string, 0, len(draft.ReferenceImages))
	for _, img := range draft.ReferenceImages {
		if img.DataURI != "" {
			images = append(images, img.DataURI)
		}
	}

	return &entity.CreateRequirementRequest{
		Title:           draft.Title,
		RequirementType: requirementType,
		Dimensions:      draft.Dimensions,
		Deadline:        draft.Deadline,
		Copywriting:     draft.Copywriting,
		ReferenceImages: images,
		AdditionalNotes: draft.AdditionalNotes,
		DesignerID:      draft.DesignerID,
		EstimatedHours:  draft.EstimatedHours,
	}
}
