package session

import (
	"context"
	"encoding/base64"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/sessionstore"
	"github.com/google/uuid"
)

// AttachReferenceImage reserves a slot in upload order and encodes the bytes
// to a data URI off the calling goroutine. Encodings may finish out of order;
// each result is merged back by image id, so the list order never changes.
func (c *Controller) AttachReferenceImage(filename, contentType string, data []byte) (string, error) {
	c.mu.Lock()
	if err := c.validator.ValidateImageCount(len(c.draft.ReferenceImages)); err != nil {
		c.mu.Unlock()
		return "", err
	}

	id := uuid.NewString()
	c.draft.ReferenceImages = append(c.draft.ReferenceImages, entity.ReferenceImage{
		ID:       id,
		Filename: filename,
	})
	c.mu.Unlock()

	go c.encodeImage(id, contentType, data)

	return id, nil
}

// RemoveReferenceImage deletes by identity and keeps the remaining order.
func (c *Controller) RemoveReferenceImage(ctx context.Context, imageID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.draft.ReferenceImages[:0]
	found := false
	for _, img := range c.draft.ReferenceImages {
		if img.ID == imageID {
			found = true
			continue
		}
		remaining = append(remaining, img)
	}
	if !found {
		return entity.ErrImageNotFound
	}

	c.draft.ReferenceImages = remaining
	c.persistLocked(ctx, sessionstore.KeyDraft)
	return nil
}

func (c *Controller) encodeImage(id, contentType string, data []byte) {
	uri := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The image may have been removed while encoding ran; drop the result then.
	for i := range c.draft.ReferenceImages {
		if c.draft.ReferenceImages[i].ID == id {
			c.draft.ReferenceImages[i].DataURI = uri
			c.persistLocked(context.Background(), sessionstore.KeyDraft)
			return
		}
	}
}
