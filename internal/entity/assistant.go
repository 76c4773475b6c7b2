package entity

import (
	"encoding/json"
	"fmt"
)

// Frames exchanged with the assistant backend over the message channel.
// The server side is a tagged union over {connected, message}; anything else
// is rejected at the decoding boundary.

const (
	FrameTypeInit      = "init"
	FrameTypeConnected = "connected"
	FrameTypeMessage   = "message"
)

// InitFrame is sent once per connection. A nil ConversationID signals a fresh
// conversation; a non-nil one asks the backend to resume it.
type InitFrame struct {
	Type           string  `json:"type"`
	ConversationID *string `json:"conversation_id"`
}

// UserTurnFrame carries one user message together with the full current draft.
// There is no correlation token: responses match turns by channel identity and
// arrival order.
type UserTurnFrame struct {
	Message        string           `json:"message"`
	CurrentForm    RequirementDraft `json:"current_form"`
	ConversationID string           `json:"conversation_id,omitempty"`
}

// ServerFrame is implemented by the two frame variants the assistant sends.
type ServerFrame interface {
	frameType() string
}

// ConnectedFrame acknowledges a resumed conversation. It never produces a chat
// entry.
type ConnectedFrame struct {
	ConversationID string `json:"conversation_id"`
}

func (ConnectedFrame) frameType() string { return FrameTypeConnected }

// MessageFrame is a full assistant turn.
type MessageFrame struct {
	Response       string     `json:"response"`
	UpdatedForm    DraftPatch `json:"updated_form"`
	MissingFields  []string   `json:"missing_fields"`
	IsComplete     bool       `json:"is_complete"`
	DesignSpecs    []string   `json:"design_specs"`
	ConversationID string     `json:"conversation_id"`
}

func (MessageFrame) frameType() string { return FrameTypeMessage }

// DecodeServerFrame parses a raw frame into one of the known variants.
func DecodeServerFrame(data []byte) (ServerFrame, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode frame envelope: %w", err)
	}

	switch envelope.Type {
	case FrameTypeConnected:
		var frame ConnectedFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("decode connected frame: %w", err)
		}
		return frame, nil
	case FrameTypeMessage:
		var frame MessageFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("decode message frame: %w", err)
		}
		return frame, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrame, envelope.Type)
	}
}
