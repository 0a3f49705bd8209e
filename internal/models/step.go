package models

import "time"

type TaskStepStatus string

const (
	StepStatusPending    TaskStepStatus = "pending"
	StepStatusInProgress TaskStepStatus = "in_progress"
	StepStatusDone       TaskStepStatus = "done"
	StepStatusBlocked    TaskStepStatus = "blocked"
)

func (s TaskStepStatus) Valid() bool {
	switch s {
	case StepStatusPending, StepStatusInProgress, StepStatusDone, StepStatusBlocked:
		return true
	}
	return false
}

type EvidenceKind string

const (
	EvidenceKindImage EvidenceKind = "image"
	EvidenceKindPDF   EvidenceKind = "pdf"
	EvidenceKindDoc   EvidenceKind = "doc"
	EvidenceKindSheet EvidenceKind = "sheet"
	EvidenceKindSlide EvidenceKind = "slide"
	EvidenceKindVideo EvidenceKind = "video"
	EvidenceKindLink  EvidenceKind = "link"
	EvidenceKindText  EvidenceKind = "text"
)

func (k EvidenceKind) Valid() bool {
	switch k {
	case EvidenceKindImage, EvidenceKindPDF, EvidenceKindDoc, EvidenceKindSheet,
		EvidenceKindSlide, EvidenceKindVideo, EvidenceKindLink, EvidenceKindText:
		return true
	}
	return false
}

// Evidence is an artifact attached to a step as proof of its outcome.
type Evidence struct {
	ID         string       `json:"id"`
	TaskID     string       `json:"taskId"`
	StepID     string       `json:"stepId"`
	Kind       EvidenceKind `json:"kind"`
	Name       string       `json:"name"`
	URL        string       `json:"url"`
	Size       int64        `json:"size"`
	MimeType   string       `json:"mimeType,omitempty"`
	PreviewURL string       `json:"previewUrl,omitempty"`
	Note       string       `json:"note,omitempty"`
	IsFinal    bool         `json:"isFinal,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// TaskStep is an ordered sub-unit of a task. Within a task the order
// values are kept dense, 1..N.
type TaskStep struct {
	ID              string         `json:"id"`
	TaskID          string         `json:"taskId"`
	Order           int            `json:"order"`
	Status          TaskStepStatus `json:"status"`
	What            string         `json:"what"`
	Result          string         `json:"result"`
	HowKeyPoints    []string       `json:"howKeyPoints,omitempty"`
	Why             string         `json:"why,omitempty"`
	ExpectedMinutes *int           `json:"expectedMinutes,omitempty"`
	SpentMinutes    *int           `json:"spentMinutes,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Evidence        []Evidence     `json:"evidence"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type CreateStepInput struct {
	What            string   `json:"what"`
	Result          string   `json:"result"`
	HowKeyPoints    []string `json:"howKeyPoints"`
	Why             string   `json:"why"`
	ExpectedMinutes *int     `json:"expectedMinutes"`
}

// UpdateStepInput merges onto the stored step. A non-nil Order acts as a
// re-sequencing hint: siblings are stably re-sorted by order and then
// renumbered 1..N.
type UpdateStepInput struct {
	What            *string         `json:"what"`
	Result          *string         `json:"result"`
	HowKeyPoints    *[]string       `json:"howKeyPoints"`
	Why             *string         `json:"why"`
	ExpectedMinutes *int            `json:"expectedMinutes"`
	SpentMinutes    *int            `json:"spentMinutes"`
	Notes           *string         `json:"notes"`
	Status          *TaskStepStatus `json:"status"`
	Order           *int            `json:"order"`
}

// CreateEvidenceInput requires kind, name, url and a numeric size;
// size zero means "no size tracked".
type CreateEvidenceInput struct {
	Kind       EvidenceKind `json:"kind"`
	Name       string       `json:"name"`
	URL        string       `json:"url"`
	Size       *int64       `json:"size"`
	MimeType   string       `json:"mimeType"`
	PreviewURL string       `json:"previewUrl"`
	Note       string       `json:"note"`
	IsFinal    bool         `json:"isFinal"`
}
