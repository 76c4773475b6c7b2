package entity

import "time"

type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusInProgress  TaskStatus = "in_progress"
	TaskStatusUnderReview TaskStatus = "under_review"
	TaskStatusRevising    TaskStatus = "revising"
	TaskStatusCompleted   TaskStatus = "completed"
)

// Requirement is a created design request as the Requirements service returns
// it. The gateway never stores these; it only passes them through.
type Requirement struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	RequirementType RequirementType `json:"requirement_type"`
	Dimensions      string          `json:"dimensions,omitempty"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	Copywriting     string          `json:"copywriting,omitempty"`
	ReferenceImages []string        `json:"reference_images,omitempty"`
	AdditionalNotes string          `json:"additional_notes,omitempty"`
	RequesterID     int64           `json:"requester_id"`
	DesignerID      *int64          `json:"designer_id,omitempty"`
	EstimatedHours  *float64        `json:"estimated_hours,omitempty"`
	Status          TaskStatus      `json:"status"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
	ConversationID  string          `json:"conversation_id,omitempty"`
}

// CreateRequirementRequest is the one-shot create payload. A draft with no
// requirement type is submitted as "other".
type CreateRequirementRequest struct {
	Title           string          `json:"title"`
	RequirementType RequirementType `json:"requirement_type"`
	Dimensions      string          `json:"dimensions,omitempty"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	Copywriting     string          `json:"copywriting,omitempty"`
	ReferenceImages []string        `json:"reference_images"`
	AdditionalNotes string          `json:"additional_notes,omitempty"`
	DesignerID      *int64          `json:"designer_id,omitempty"`
	EstimatedHours  *float64        `json:"estimated_hours,omitempty"`
}

// UpdateRequirementRequest patches an existing requirement. Absent fields are
// left untouched by the Requirements service.
type UpdateRequirementRequest struct {
	Title           *string          `json:"title,omitempty"`
	RequirementType *RequirementType `json:"requirement_type,omitempty"`
	Dimensions      *string          `json:"dimensions,omitempty"`
	Deadline        *time.Time       `json:"deadline,omitempty"`
	Copywriting     *string          `json:"copywriting,omitempty"`
	ReferenceImages []string         `json:"reference_images,omitempty"`
	AdditionalNotes *string          `json:"additional_notes,omitempty"`
	DesignerID      *int64           `json:"designer_id,omitempty"`
	EstimatedHours  *float64         `json:"estimated_hours,omitempty"`
}

type ListRequirementsRequest struct {
	Status TaskStatus
	Skip   int
	Limit  int
}

// TaskTimeLog is one transition record from the Tasks service.
type TaskTimeLog struct {
	ID               int64     `json:"id"`
	RequirementID    int64     `json:"requirement_id"`
	Action           string    `json:"action"`
	Timestamp        time.Time `json:"timestamp"`
	AccumulatedHours float64   `json:"accumulated_hours"`
}

// TaskTransitionResult is what the Tasks service returns for every transition.
type TaskTransitionResult struct {
	Message string     `json:"message"`
	Status  TaskStatus `json:"status"`
}

type Designer struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// DesignerStats is one aggregate row from the Reports service.
type DesignerStats struct {
	DesignerID      int64   `json:"designer_id"`
	DesignerName    string  `json:"designer_name"`
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	TotalHours      float64 `json:"total_hours"`
	AvgHoursPerTask float64 `json:"avg_hours_per_task"`
}

type StatsRange struct {
	StartDate  string
	EndDate    string
	DesignerID *int64
}

// ReportFormat selects the rendering for locally generated reports.
type ReportFormat string

const (
	FormatXLSX ReportFormat = "xlsx"
	FormatPDF  ReportFormat = "pdf"
)
