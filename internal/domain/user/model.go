package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an account that owns tasks and categories.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex:idx_user_email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	DisplayName  string    `json:"display_name" gorm:"size:100"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserPreferences holds per-user display settings as a JSON document,
// so new settings don't need a migration.
type UserPreferences struct {
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;primary_key"`
	Settings  datatypes.JSON `json:"settings" gorm:"type:jsonb;not null;default:'{}'"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

// UserActivityLog records one authentication or account event.
type UserActivityLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_activity_user"`
	Action    string    `json:"action" gorm:"size:50;not null"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
}

func (UserActivityLog) TableName() string {
	return "user_activity_logs"
}

func (l *UserActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
