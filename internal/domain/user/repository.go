package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/todotracker/backend/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error

	SavePreferences(ctx context.Context, prefs *UserPreferences) error
	FindPreferences(ctx context.Context, userID uuid.UUID) (*UserPreferences, error)

	RecordActivity(ctx context.Context, entry *UserActivityLog) error
	FindActivity(ctx context.Context, userID uuid.UUID, limit int) ([]UserActivityLog, error)
}

type userRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SavePreferences(ctx context.Context, prefs *UserPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}

func (r *userRepository) FindPreferences(ctx context.Context, userID uuid.UUID) (*UserPreferences, error) {
	var prefs UserPreferences
	result := r.db.WithContext(ctx).First(&prefs, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &prefs, nil
}

func (r *userRepository) RecordActivity(ctx context.Context, entry *UserActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *userRepository) FindActivity(ctx context.Context, userID uuid.UUID, limit int) ([]UserActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []UserActivityLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
