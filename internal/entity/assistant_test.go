package entity

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeServerFrameConnected(t *testing.T) {
	frame, err := DecodeServerFrame([]byte(`{"type":"connected","conversation_id":"conv-42"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	connected, ok := frame.(ConnectedFrame)
	if !ok {
		t.Fatalf("expected ConnectedFrame, got %T", frame)
	}
	if connected.ConversationID != "conv-42" {
		t.Fatalf("conversation id = %q, want conv-42", connected.ConversationID)
	}
}

func TestDecodeServerFrameMessage(t *testing.T) {
	raw := `{
		"type": "message",
		"response": "Got it. What size should the banner be?",
		"updated_form": {"title": "Sale Banner", "requirement_type": "banner"},
		"missing_fields": ["dimensions"],
		"is_complete": false,
		"design_specs": ["high contrast"],
		"conversation_id": "conv-42"
	}`

	frame, err := DecodeServerFrame([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	msg, ok := frame.(MessageFrame)
	if !ok {
		t.Fatalf("expected MessageFrame, got %T", frame)
	}
	if msg.Response == "" {
		t.Fatal("response text lost")
	}
	if msg.UpdatedForm.Title == nil || *msg.UpdatedForm.Title != "Sale Banner" {
		t.Fatal("updated form title not decoded")
	}
	if msg.UpdatedForm.Dimensions != nil {
		t.Fatal("absent patch field decoded as present")
	}
	if len(msg.MissingFields) != 1 || msg.MissingFields[0] != FieldDimensions {
		t.Fatalf("missing fields = %v", msg.MissingFields)
	}
	if msg.ConversationID != "conv-42" {
		t.Fatalf("conversation id = %q", msg.ConversationID)
	}
}

func TestDecodeServerFrameRejectsUnknownType(t *testing.T) {
	_, err := DecodeServerFrame([]byte(`{"type":"typing"}`))
	if !errors.Is(err, ErrUnknownFrame) {
		t.Fatalf("expected ErrUnknownFrame, got %v", err)
	}
}

func TestDecodeServerFrameRejectsMalformedJSON(t *testing.T) {
	if _, err := DecodeServerFrame([]byte(`{not json`)); err == nil {
		t.Fatal("malformed frame accepted")
	}
}

func TestInitFrameEncodesNullConversationID(t *testing.T) {
	data, err := json.Marshal(InitFrame{Type: FrameTypeInit})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["type"] != FrameTypeInit {
		t.Fatalf("type = %v", decoded["type"])
	}
	// The backend distinguishes null (fresh) from a string (resume); the key
	// must be present either way.
	if v, ok := decoded["conversation_id"]; !ok || v != nil {
		t.Fatalf("conversation_id = %v (present=%v), want explicit null", v, ok)
	}
}
