package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// NormalizeStatus coerces an unknown status to the pending default.
// Invalid values are accepted and substituted rather than rejected.
func NormalizeStatus(s string) TaskStatus {
	status := TaskStatus(s)
	if !status.IsValid() {
		return TaskStatusPending
	}
	return status
}

// NormalizePriority coerces an unknown priority to the medium default.
func NormalizePriority(p string) TaskPriority {
	priority := TaskPriority(p)
	if !priority.IsValid() {
		return TaskPriorityMedium
	}
	return priority
}

// Ordinal returns the sort rank of a priority, high first.
func (p TaskPriority) Ordinal() int {
	switch p {
	case TaskPriorityHigh:
		return 0
	case TaskPriorityMedium:
		return 1
	case TaskPriorityLow:
		return 2
	}
	return 3
}

// Task represents a tracked task owned by a single user
type Task struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index:idx_task_owner"`
	Title       string       `json:"title" gorm:"size:255;not null"`
	Description string       `json:"description" gorm:"size:5000"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'pending';index:idx_task_status"`
	Priority    TaskPriority `json:"priority" gorm:"not null;default:'medium';index:idx_task_priority"`
	DueDate     *time.Time   `json:"due_date,omitempty" gorm:"type:date;index:idx_task_due"`
	IsArchived  bool         `json:"is_archived" gorm:"not null;default:false"`
	IsDeleted   bool         `json:"is_deleted" gorm:"not null;default:false;index:idx_task_deleted"`
	DeletedAt   *time.Time   `json:"deleted_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// Validate checks the invariants the database cannot express
func (t *Task) Validate() error {
	if t.Title == "" || len(t.Title) > maxTitleLength {
		return ErrInvalidInput
	}
	if len(t.Description) > maxDescriptionLength {
		return ErrInvalidInput
	}
	if t.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	if !t.Status.IsValid() || !t.Priority.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityMedium
	}
	return t.Validate()
}

const (
	maxTitleLength       = 255
	maxDescriptionLength = 5000
)

// HistoryAction identifies the kind of change a history entry records.
type HistoryAction string

const (
	HistoryActionCreated       HistoryAction = "created"
	HistoryActionUpdated       HistoryAction = "updated"
	HistoryActionDeleted       HistoryAction = "deleted"
	HistoryActionRestored      HistoryAction = "restored"
	HistoryActionStatusChanged HistoryAction = "status_changed"
)

// TaskHistory is an append-only audit record of a single field-level
// change to a task. Rows are never updated or deleted while the task
// exists; they go away only when the task row itself is hard-deleted.
type TaskHistory struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TaskID    uuid.UUID     `json:"task_id" gorm:"type:uuid;not null;index:idx_history_task"`
	UserID    uuid.UUID     `json:"user_id" gorm:"type:uuid;not null"`
	Action    HistoryAction `json:"action" gorm:"not null"`
	FieldName string        `json:"field_name"`
	OldValue  string        `json:"old_value"`
	NewValue  string        `json:"new_value"`
	ChangedAt time.Time     `json:"changed_at" gorm:"not null;default:current_timestamp"`
}

func (TaskHistory) TableName() string {
	return "task_history"
}

func (h *TaskHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.ChangedAt.IsZero() {
		h.ChangedAt = time.Now().UTC()
	}
	return nil
}

// BulkAction names a bulk task operation.
type BulkAction string

const (
	BulkActionComplete       BulkAction = "complete"
	BulkActionDelete         BulkAction = "delete"
	BulkActionChangePriority BulkAction = "change_priority"
	BulkActionChangeStatus   BulkAction = "change_status"
)

func (a BulkAction) IsValid() bool {
	switch a {
	case BulkActionComplete, BulkActionDelete, BulkActionChangePriority, BulkActionChangeStatus:
		return true
	}
	return false
}

// BulkError reports the failure of one task within a bulk operation.
type BulkError struct {
	TaskID  uuid.UUID `json:"task_id"`
	Message string    `json:"message"`
}

// BulkResult aggregates the outcome of a bulk operation. Individual
// failures do not abort the batch; they are collected here instead.
type BulkResult struct {
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Errors    []BulkError `json:"errors,omitempty"`
}
