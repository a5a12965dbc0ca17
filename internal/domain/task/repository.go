package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/todotracker/backend/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound covers missing, foreign-owned and trashed tasks
	// alike so that callers cannot probe for another user's task ids.
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Columns callers may sort by. Anything else silently falls back to
// created_at rather than failing the request.
var sortableColumns = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"due_date":   {},
	"priority":   {},
	"title":      {},
	"status":     {},
}

// TaskFilter defines filtering options for listing tasks. All
// predicates combine with AND; the set-valued fields are OR within
// themselves.
type TaskFilter struct {
	UserID          uuid.UUID
	Statuses        []TaskStatus
	Priorities      []TaskPriority
	Search          string
	CategoryIDs     []uuid.UUID
	DueFrom         *time.Time
	DueTo           *time.Time
	IncludeArchived bool
	OrderBy         string
	OrderDir        string
	Limit           int
	Offset          int
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	FindDueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Task, error)
	Update(ctx context.Context, task *Task) error

	FindTrashedByID(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	FindTrashed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, int64, error)
	FindTrashedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	FindPurgeable(ctx context.Context, cutoff time.Time) ([]Task, error)
	HardDelete(ctx context.Context, id uuid.UUID) error

	AppendHistory(ctx context.Context, entry *TaskHistory) error
	FindHistory(ctx context.Context, taskID uuid.UUID) ([]TaskHistory, error)
}

type taskRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	var task Task
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var tasks []Task
	var total int64

	query := r.db.WithContext(ctx).Model(&Task{}).
		Where("user_id = ?", filter.UserID).
		Where("is_deleted = ?", false)

	if !filter.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.Priorities) > 0 {
		query = query.Where("priority IN ?", filter.Priorities)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where(
			"id IN (SELECT task_id FROM task_categories WHERE category_id IN ?)",
			filter.CategoryIDs,
		)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}

	// Count total before pagination
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter.OrderBy, filter.OrderDir))

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Offset(offset).Limit(limit)

	if err := query.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// orderClause builds the ORDER BY expression from the caller-supplied
// column and direction, constrained to the sortable allow-list.
func orderClause(orderBy, orderDir string) string {
	column := orderBy
	if _, ok := sortableColumns[column]; !ok {
		column = "created_at"
	}

	dir := "DESC"
	if strings.EqualFold(orderDir, "ASC") {
		dir = "ASC"
	}

	switch column {
	case "due_date":
		// NULL due dates sort last regardless of direction.
		return fmt.Sprintf("due_date IS NULL, due_date %s", dir)
	case "priority":
		// Rank by the fixed priority ordinal, not alphabetically.
		return fmt.Sprintf("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END %s", dir)
	default:
		return fmt.Sprintf("%s %s", column, dir)
	}
}

func (r *taskRepository) FindDueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ? AND is_archived = ?", userID, false, false).
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", from, to).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) FindTrashedByID(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	var task Task
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, true).
		First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *taskRepository) FindTrashed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, int64, error) {
	var tasks []Task
	var total int64

	query := r.db.WithContext(ctx).Model(&Task{}).
		Where("user_id = ? AND is_deleted = ?", userID, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("deleted_at DESC").Offset(offset).Limit(limit).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *taskRepository) FindTrashedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Task{}).
		Where("user_id = ? AND is_deleted = ?", userID, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *taskRepository) FindPurgeable(ctx context.Context, cutoff time.Time) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("is_deleted = ? AND deleted_at IS NOT NULL AND deleted_at <= ?", true, cutoff).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// HardDelete removes the task row and its category links. The history
// rows go with it; the caller is responsible for the audit log line.
func (r *taskRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_categories WHERE task_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&TaskHistory{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}

func (r *taskRepository) AppendHistory(ctx context.Context, entry *TaskHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *taskRepository) FindHistory(ctx context.Context, taskID uuid.UUID) ([]TaskHistory, error) {
	var entries []TaskHistory
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("changed_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
