package dto

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,not_empty,max=100"`
	Color string `json:"color" validate:"omitempty,max=7"`
}

// UpdateCategoryRequest is a partial category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,not_empty,max=100"`
	Color *string `json:"color" validate:"omitempty,max=7"`
}

// AssignCategoryRequest attaches a category to a task.
type AssignCategoryRequest struct {
	CategoryID string `json:"category_id" validate:"required,valid_uuid"`
}
