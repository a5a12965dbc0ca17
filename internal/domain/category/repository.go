package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/todotracker/backend/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id, userID uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, userID uuid.UUID) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error

	Link(ctx context.Context, taskID, categoryID uuid.UUID) error
	Unlink(ctx context.Context, taskID, categoryID uuid.UUID) error
	FindByTask(ctx context.Context, taskID uuid.UUID) ([]Category, error)
}

type categoryRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*Category, error) {
	var category Category
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *Category) error {
	result := r.db.WithContext(ctx).Save(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes the category and its task links in one transaction.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&TaskCategory{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// Link attaches a category to a task. Re-linking an existing pair is
// a no-op rather than an error.
func (r *categoryRepository) Link(ctx context.Context, taskID, categoryID uuid.UUID) error {
	link := TaskCategory{TaskID: taskID, CategoryID: categoryID}
	return r.db.WithContext(ctx).
		Where("task_id = ? AND category_id = ?", taskID, categoryID).
		FirstOrCreate(&link).Error
}

func (r *categoryRepository) Unlink(ctx context.Context, taskID, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("task_id = ? AND category_id = ?", taskID, categoryID).
		Delete(&TaskCategory{}).Error
}

func (r *categoryRepository) FindByTask(ctx context.Context, taskID uuid.UUID) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).
		Joins("JOIN task_categories ON task_categories.category_id = categories.id").
		Where("task_categories.task_id = ?", taskID).
		Order("categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
