package entity

// DTOs for the gateway's own HTTP surface.

type SubmitMessageRequest struct {
	Message string `json:"message"`
}

// SessionView is the reconciled session state handed to the view layer.
type SessionView struct {
	SessionID        string           `json:"session_id"`
	Draft            RequirementDraft `json:"draft"`
	ConversationID   string           `json:"conversation_id,omitempty"`
	Messages         []ChatMessage    `json:"messages"`
	MissingFields    []string         `json:"missing_fields"`
	IsComplete       bool             `json:"is_complete"`
	DesignSpecHints  []string         `json:"design_specs"`
	ConnectionStatus ConnectionStatus `json:"connection_status"`
	AwaitingReply    bool             `json:"awaiting_reply"`
}

type UpdateDraftRequest struct {
	Title           *string          `json:"title,omitempty"`
	RequirementType *RequirementType `json:"requirement_type,omitempty"`
	Dimensions      *string          `json:"dimensions,omitempty"`
	Copywriting     *string          `json:"copywriting,omitempty"`
	AdditionalNotes *string          `json:"additional_notes,omitempty"`
	DesignerID      *int64           `json:"designer_id,omitempty"`
}

type AttachImageResponse struct {
	ImageID  string `json:"image_id"`
	Filename string `json:"filename"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
