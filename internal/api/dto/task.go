package dto

// CreateTaskRequest is the payload for creating a task. Status and
// priority are free-form here; unknown values fall back to defaults
// downstream instead of failing the request.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,not_empty,max=255"`
	Description string `json:"description" validate:"max=5000"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date" validate:"omitempty,date_only"`
}

// UpdateTaskRequest is a partial update; absent fields stay untouched.
// An explicit empty due_date clears the deadline.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,not_empty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date" validate:"omitempty,date_only"`
}

// UpdateTaskStatusRequest is the fast-path status change payload.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,not_empty"`
}

// BulkUpdateRequest applies one action to a set of tasks.
type BulkUpdateRequest struct {
	Action   string   `json:"action" validate:"required,oneof=complete delete change_priority change_status"`
	TaskIDs  []string `json:"task_ids" validate:"required,min=1,dive,valid_uuid"`
	Status   string   `json:"status"`
	Priority string   `json:"priority"`
}

// TaskListQuery captures the list endpoint's filters. Comma-separated
// multi-value fields are split in the handler.
type TaskListQuery struct {
	Status      string `form:"status"`
	Priority    string `form:"priority"`
	Search      string `form:"search"`
	CategoryIDs string `form:"category_id"`
	DueFrom     string `form:"due_from" validate:"omitempty,date_only"`
	DueTo       string `form:"due_to" validate:"omitempty,date_only"`
	Archived    bool   `form:"archived"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
	Limit       int    `form:"limit" validate:"omitempty,min=1"`
	Offset      int    `form:"offset" validate:"omitempty,min=0"`
}

// TrashListQuery pages through the trash listing.
type TrashListQuery struct {
	Limit  int `form:"limit" validate:"omitempty,min=1"`
	Offset int `form:"offset" validate:"omitempty,min=0"`
}
