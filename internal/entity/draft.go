package entity

import (
	"fmt"
	"time"
)

type RequirementType string

const (
	RequirementTypeBanner     RequirementType = "banner"
	RequirementTypePoster     RequirementType = "poster"
	RequirementTypeDetailPage RequirementType = "detail_page"
	RequirementTypeIcon       RequirementType = "icon"
	RequirementTypeOther      RequirementType = "other"
)

func (rt RequirementType) Validate() error {
	switch rt {
	case RequirementTypeBanner, RequirementTypePoster, RequirementTypeDetailPage,
		RequirementTypeIcon, RequirementTypeOther:
		return nil
	default:
		return fmt.Errorf("unknown requirement type: %s", rt)
	}
}

// Required draft field names, in the order the completeness badge reports them.
const (
	FieldTitle           = "title"
	FieldRequirementType = "requirement_type"
	FieldDimensions      = "dimensions"
)

// ReferenceImage is a client-local upload, already encoded to a data URI.
// Images keep their position from the moment the upload was accepted,
// regardless of when encoding finished.
type ReferenceImage struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	DataURI  string `json:"data_uri"`
}

// RequirementDraft is the structured request being assembled through the
// conversation. DesignerID and ReferenceImages are owned by the client side of
// the session and are never touched by assistant-driven merges.
type RequirementDraft struct {
	Title           string           `json:"title"`
	RequirementType RequirementType  `json:"requirement_type,omitempty"`
	Dimensions      string           `json:"dimensions"`
	Deadline        *time.Time       `json:"deadline,omitempty"`
	Copywriting     string           `json:"copywriting,omitempty"`
	AdditionalNotes string           `json:"additional_notes,omitempty"`
	EstimatedHours  *float64         `json:"estimated_hours,omitempty"`
	DesignerID      *int64           `json:"designer_id,omitempty"`
	ReferenceImages []ReferenceImage `json:"reference_images"`
}

// DraftPatch is the partial form update carried by an assistant message.
// Absent fields stay untouched on merge. The assistant never sends designer or
// reference-image updates; if it did they would be dropped here by not having
// a slot to land in.
type DraftPatch struct {
	Title           *string          `json:"title,omitempty"`
	RequirementType *RequirementType `json:"requirement_type,omitempty"`
	Dimensions      *string          `json:"dimensions,omitempty"`
	Deadline        *time.Time       `json:"deadline,omitempty"`
	Copywriting     *string          `json:"copywriting,omitempty"`
	AdditionalNotes *string          `json:"additional_notes,omitempty"`
	EstimatedHours  *float64         `json:"estimated_hours,omitempty"`
}

// Apply merges the patch into the draft. Client-local fields are not part of
// the patch type, so they survive every merge by construction.
func (p *DraftPatch) Apply(draft *RequirementDraft) {
	if p.Title != nil {
		draft.Title = *p.Title
	}
	if p.RequirementType != nil {
		draft.RequirementType = *p.RequirementType
	}
	if p.Dimensions != nil {
		draft.Dimensions = *p.Dimensions
	}
	if p.Deadline != nil {
		draft.Deadline = p.Deadline
	}
	if p.Copywriting != nil {
		draft.Copywriting = *p.Copywriting
	}
	if p.AdditionalNotes != nil {
		draft.AdditionalNotes = *p.AdditionalNotes
	}
	if p.EstimatedHours != nil {
		draft.EstimatedHours = p.EstimatedHours
	}
}

// MissingFields reports which required fields are still empty, always in the
// order [title, requirement_type, dimensions].
func (d *RequirementDraft) MissingFields() []string {
	var missing []string
	if d.Title == "" {
		missing = append(missing, FieldTitle)
	}
	if d.RequirementType == "" {
		missing = append(missing, FieldRequirementType)
	}
	if d.Dimensions == "" {
		missing = append(missing, FieldDimensions)
	}
	return missing
}

func (d *RequirementDraft) IsComplete() bool {
	return len(d.MissingFields()) == 0
}
