// Package sessionstore holds the durable session cache. Values are
// JSON-encoded blobs under fixed string keys, scoped per session, absent on
// first run and cleared in full when a draft is submitted.
package sessionstore

import (
	"context"
	"encoding/json"
)

// Cache keys for one session.
const (
	KeyDraft          = "draft"
	KeyMessages       = "messages"
	KeyConversationID = "conversation_id"
	KeyMissingFields  = "missing_fields"
	KeyDesignSpecs    = "design_specs"
	KeyIsComplete     = "is_complete"
)

// Keys lists every key a session may persist, in no particular order.
var Keys = []string{
	KeyDraft,
	KeyMessages,
	KeyConversationID,
	KeyMissingFields,
	KeyDesignSpecs,
	KeyIsComplete,
}

// Store is the durable session cache. Save merges the given keys over what is
// already stored; Clear removes every key of the session. Writes are
// best-effort: the session keeps working if the backend fails.
type Store interface {
	Load(ctx context.Context, sessionID string) (map[string]json.RawMessage, error)
	Save(ctx context.Context, sessionID string, values map[string]json.RawMessage) error
	Clear(ctx context.Context, sessionID string) error
}
