package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is the top-level unit of work.
type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	StartedAt     *time.Time   `json:"startedAt,omitempty"`
	DueDate       *time.Time   `json:"dueDate,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	SopID         string       `json:"sopId,omitempty"`
	Tags          []string     `json:"tags"`
	EstimatedTime *int         `json:"estimatedTime,omitempty"`
	ActualTime    *int         `json:"actualTime,omitempty"`
	PomodoroCount int          `json:"pomodoroCount"`
}

type CreateTaskInput struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Priority      TaskPriority `json:"priority"`
	StartedAt     *time.Time   `json:"startedAt"`
	DueDate       *time.Time   `json:"dueDate"`
	SopID         string       `json:"sopId"`
	Tags          []string     `json:"tags"`
	EstimatedTime *int         `json:"estimatedTime"`
}

// UpdateTaskInput uses pointer fields so absent JSON keys leave the
// stored value untouched.
type UpdateTaskInput struct {
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	Status        *TaskStatus   `json:"status"`
	Priority      *TaskPriority `json:"priority"`
	StartedAt     *time.Time    `json:"startedAt"`
	DueDate       *time.Time    `json:"dueDate"`
	SopID         *string       `json:"sopId"`
	Tags          *[]string     `json:"tags"`
	EstimatedTime *int          `json:"estimatedTime"`
	ActualTime    *int          `json:"actualTime"`
	PomodoroCount *int          `json:"pomodoroCount"`
}

// TaskRecord is a free-form progress note attached to a task.
type TaskRecord struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Duration  *int      `json:"duration,omitempty"`
	StepID    string    `json:"stepId,omitempty"`
}

type CreateRecordInput struct {
	Content  string `json:"content"`
	StepID   string `json:"stepId"`
	Duration *int   `json:"duration"`
}

// TaskStats aggregates task completion and time-tracking numbers.
type TaskStats struct {
	Total             int     `json:"total"`
	Completed         int     `json:"completed"`
	InProgress        int     `json:"inProgress"`
	Pending           int     `json:"pending"`
	CompletionRate    float64 `json:"completionRate"`
	TotalTime         int     `json:"totalTime"`
	AvgTimePerTask    float64 `json:"avgTimePerTask"`
	EvidenceCount     int     `json:"evidenceCount"`
	TotalEvidenceSize string  `json:"totalEvidenceSize"`
}
