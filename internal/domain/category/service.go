package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/todotracker/backend/internal/domain/task"
	"go.uber.org/zap"
)

// CreateCategoryInput carries the caller-supplied fields for a new
// category.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Color  string
}

// UpdateCategoryInput carries a partial category update.
type UpdateCategoryInput struct {
	Name  *string
	Color *string
}

// Service defines the interface for category business operations
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error)
	GetCategory(ctx context.Context, id, userID uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]Category, error)
	UpdateCategory(ctx context.Context, id, userID uuid.UUID, input UpdateCategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id, userID uuid.UUID) error

	AssignToTask(ctx context.Context, taskID, categoryID, userID uuid.UUID) error
	RemoveFromTask(ctx context.Context, taskID, categoryID, userID uuid.UUID) error
	ListForTask(ctx context.Context, taskID, userID uuid.UUID) ([]Category, error)
}

type categoryService struct {
	repo  CategoryRepository
	tasks task.TaskRepository
	log   *zap.Logger
}

func NewService(repo CategoryRepository, tasks task.TaskRepository, log *zap.Logger) Service {
	return &categoryService{
		repo:  repo,
		tasks: tasks,
		log:   log,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	if input.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if input.Name == "" || len(input.Name) > maxNameLength {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, maxNameLength)
	}

	category := &Category{
		ID:     uuid.New(),
		UserID: input.UserID,
		Name:   input.Name,
		Color:  input.Color,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		s.log.Error("Failed to create category",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id, userID uuid.UUID) (*Category, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	return s.repo.FindAll(ctx, userID)
}

func (s *categoryService) UpdateCategory(ctx context.Context, id, userID uuid.UUID, input UpdateCategoryInput) (*Category, error) {
	category, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Name != nil && *input.Name != category.Name {
		if *input.Name == "" || len(*input.Name) > maxNameLength {
			return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, maxNameLength)
		}
		category.Name = *input.Name
		changed = true
	}
	if input.Color != nil && *input.Color != category.Color {
		category.Color = *input.Color
		changed = true
	}
	if !changed {
		return category, nil
	}

	category.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category and detaches it from every
// task. The tasks themselves are untouched.
func (s *categoryService) DeleteCategory(ctx context.Context, id, userID uuid.UUID) error {
	category, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, category.ID); err != nil {
		s.log.Error("Failed to delete category",
			zap.String("category_id", id.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// AssignToTask links a category to a task. Both sides must belong to
// the caller; the check lives here so every entry point gets it.
func (s *categoryService) AssignToTask(ctx context.Context, taskID, categoryID, userID uuid.UUID) error {
	if _, err := s.tasks.FindByID(ctx, taskID, userID); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, categoryID, userID); err != nil {
		return err
	}
	return s.repo.Link(ctx, taskID, categoryID)
}

func (s *categoryService) RemoveFromTask(ctx context.Context, taskID, categoryID, userID uuid.UUID) error {
	if _, err := s.tasks.FindByID(ctx, taskID, userID); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, categoryID, userID); err != nil {
		return err
	}
	return s.repo.Unlink(ctx, taskID, categoryID)
}

func (s *categoryService) ListForTask(ctx context.Context, taskID, userID uuid.UUID) ([]Category, error) {
	if _, err := s.tasks.FindByID(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByTask(ctx, taskID)
}
