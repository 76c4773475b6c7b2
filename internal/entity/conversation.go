package entity

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is one entry in the append-only conversation transcript.
type ChatMessage struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Images    []string    `json:"images,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type ConnectionStatus string

const (
	ConnectionConnecting ConnectionStatus = "connecting"
	ConnectionConnected  ConnectionStatus = "connected"
)

// ConversationState is the reconciled view of one assistant conversation.
// MissingFields and IsComplete are derived from the draft; DesignSpecHints are
// replaced wholesale on every assistant turn.
type ConversationState struct {
	ConversationID   string           `json:"conversation_id,omitempty"`
	Messages         []ChatMessage    `json:"messages"`
	MissingFields    []string         `json:"missing_fields"`
	IsComplete       bool             `json:"is_complete"`
	DesignSpecHints  []string         `json:"design_specs"`
	ConnectionStatus ConnectionStatus `json:"connection_status"`
	AwaitingReply    bool             `json:"awaiting_reply"`
}
