package category

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxNameLength = 100

// Category is a user-owned label that can be attached to any number
// of the same user's tasks.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_category_owner"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Color     string    `json:"color" gorm:"size:7"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) Validate() error {
	if c.Name == "" || len(c.Name) > maxNameLength {
		return ErrInvalidInput
	}
	if c.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return c.Validate()
}

// TaskCategory is the join row linking one task to one category.
type TaskCategory struct {
	TaskID     uuid.UUID `json:"task_id" gorm:"type:uuid;primary_key"`
	CategoryID uuid.UUID `json:"category_id" gorm:"type:uuid;primary_key;index:idx_task_category_cat"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
}

func (TaskCategory) TableName() string {
	return "task_categories"
}
