package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DueDateLayout is the wire format for due dates. Tasks are due on a
// calendar day, not at an instant, so no time component is carried.
const DueDateLayout = "2006-01-02"

// TrashRetentionDays is how long a soft-deleted task survives before
// the retention sweep may purge it.
const TrashRetentionDays = 30

// CreateTaskInput carries the caller-supplied fields for a new task.
// Status and Priority arrive as raw strings; unknown values are
// normalized to defaults rather than rejected.
type CreateTaskInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
}

// UpdateTaskInput carries a partial update. Nil fields are untouched;
// an empty-string DueDate clears the due date.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
}

// BulkUpdateInput names the action and its targets. Priority and
// Status are only consulted for the corresponding change actions.
type BulkUpdateInput struct {
	Action   BulkAction
	TaskIDs  []uuid.UUID
	Priority string
	Status   string
}

// Service defines the interface for task business operations
type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	UpdateTask(ctx context.Context, id, userID uuid.UUID, input UpdateTaskInput) (*Task, error)
	UpdateTaskStatus(ctx context.Context, id, userID uuid.UUID, status string) (*Task, error)
	ArchiveTask(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	UnarchiveTask(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	DeleteTask(ctx context.Context, id, userID uuid.UUID) error
	RestoreTask(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	PermanentlyDeleteTask(ctx context.Context, id, userID uuid.UUID) error
	ListTrash(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, int64, error)
	EmptyTrash(ctx context.Context, userID uuid.UUID) (int, error)
	PurgeOldTrashedTasks(ctx context.Context, thresholdDays int) (int, error)
	BulkUpdate(ctx context.Context, userID uuid.UUID, input BulkUpdateInput) (*BulkResult, error)
	ListTaskHistory(ctx context.Context, taskID, userID uuid.UUID) ([]TaskHistory, error)
}

type taskService struct {
	repo  TaskRepository
	audit *AuditLogger
	log   *zap.Logger
}

func NewService(repo TaskRepository, audit *AuditLogger, log *zap.Logger) Service {
	return &taskService{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// parseDueDate parses a date-only string. The layout rejects
// impossible dates such as February 30th.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: due date must be a valid YYYY-MM-DD date", ErrInvalidInput)
	}
	return &t, nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, maxTitleLength)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxDescriptionLength)
	}
	return nil
}

// applyStatus transitions a task's status and keeps completed_at in
// step: set when the task becomes completed, cleared whenever it
// leaves completed again. The same rule applies on every path that
// changes status.
func applyStatus(t *Task, status TaskStatus, now time.Time) {
	if t.Status == status {
		return
	}
	if status == TaskStatusCompleted {
		t.CompletedAt = &now
	} else if t.Status == TaskStatusCompleted {
		t.CompletedAt = nil
	}
	t.Status = status
}

// recordHistory appends a history entry. History is an audit trail,
// not part of the mutation's contract, so a failed insert is logged
// and swallowed rather than failing the request.
func (s *taskService) recordHistory(ctx context.Context, taskID, userID uuid.UUID, action HistoryAction, field, oldValue, newValue string) {
	entry := &TaskHistory{
		TaskID:    taskID,
		UserID:    userID,
		Action:    action,
		FieldName: field,
		OldValue:  oldValue,
		NewValue:  newValue,
	}
	if err := s.repo.AppendHistory(ctx, entry); err != nil {
		s.log.Error("Failed to record task history",
			zap.String("task_id", taskID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

func (s *taskService) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      NormalizeStatus(input.Status),
		Priority:    NormalizePriority(input.Priority),
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == TaskStatusCompleted {
		task.CompletedAt = &now
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.log.Error("Failed to create task",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, err
	}

	s.recordHistory(ctx, task.ID, input.UserID, HistoryActionCreated, "", "", "")

	s.log.Info("Task created",
		zap.String("task_id", task.ID.String()),
		zap.String("user_id", input.UserID.String()))
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *taskService) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	if filter.UserID == uuid.Nil {
		return nil, 0, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	return s.repo.FindAll(ctx, filter)
}

// fieldChange is one pending field mutation within an update, kept so
// history rows can be written after the task row is saved.
type fieldChange struct {
	field    string
	oldValue string
	newValue string
}

func (s *taskService) UpdateTask(ctx context.Context, id, userID uuid.UUID, input UpdateTaskInput) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// Validate every supplied field before touching the task, so a
	// bad field never results in a partial write.
	var changes []fieldChange

	if input.Title != nil && *input.Title != task.Title {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		changes = append(changes, fieldChange{"title", task.Title, *input.Title})
	}
	if input.Description != nil && *input.Description != task.Description {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		changes = append(changes, fieldChange{"description", task.Description, *input.Description})
	}

	var newStatus *TaskStatus
	if input.Status != nil {
		normalized := NormalizeStatus(*input.Status)
		if normalized != task.Status {
			newStatus = &normalized
			changes = append(changes, fieldChange{"status", string(task.Status), string(normalized)})
		}
	}

	var newPriority *TaskPriority
	if input.Priority != nil {
		normalized := NormalizePriority(*input.Priority)
		if normalized != task.Priority {
			newPriority = &normalized
			changes = append(changes, fieldChange{"priority", string(task.Priority), string(normalized)})
		}
	}

	var newDueDate **time.Time
	if input.DueDate != nil {
		parsed, err := parseDueDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		if !dueDatesEqual(task.DueDate, parsed) {
			newDueDate = &parsed
			changes = append(changes, fieldChange{"due_date", formatDueDate(task.DueDate), formatDueDate(parsed)})
		}
	}

	if len(changes) == 0 {
		return task, nil
	}

	now := time.Now().UTC()
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if newStatus != nil {
		applyStatus(task, *newStatus, now)
	}
	if newPriority != nil {
		task.Priority = *newPriority
	}
	if newDueDate != nil {
		task.DueDate = *newDueDate
	}
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		s.log.Error("Failed to update task",
			zap.String("task_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	for _, c := range changes {
		s.recordHistory(ctx, task.ID, userID, HistoryActionUpdated, c.field, c.oldValue, c.newValue)
	}

	return task, nil
}

func dueDatesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func formatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DueDateLayout)
}

// UpdateTaskStatus is the fast path for the single most common
// mutation. Unlike the create/update paths it rejects unknown
// statuses instead of coercing them; a dedicated status endpoint has
// no default to fall back to.
func (s *taskService) UpdateTaskStatus(ctx context.Context, id, userID uuid.UUID, status string) (*Task, error) {
	newStatus := TaskStatus(status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	task, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if task.Status == newStatus {
		return task, nil
	}

	oldStatus := task.Status
	now := time.Now().UTC()
	applyStatus(task, newStatus, now)
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		s.log.Error("Failed to update task status",
			zap.String("task_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	s.recordHistory(ctx, task.ID, userID, HistoryActionStatusChanged, "status", string(oldStatus), string(newStatus))
	return task, nil
}

func (s *taskService) ArchiveTask(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	return s.setArchived(ctx, id, userID, true)
}

func (s *taskService) UnarchiveTask(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	return s.setArchived(ctx, id, userID, false)
}

func (s *taskService) setArchived(ctx context.Context, id, userID uuid.UUID, archived bool) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task.IsArchived == archived {
		return task, nil
	}

	old := task.IsArchived
	task.IsArchived = archived
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, task.ID, userID, HistoryActionUpdated, "is_archived",
		fmt.Sprintf("%t", old), fmt.Sprintf("%t", archived))
	return task, nil
}

// DeleteTask moves a task to the trash. The row survives with
// is_deleted set so it can be restored until the retention sweep
// catches up with it.
func (s *taskService) DeleteTask(ctx context.Context, id, userID uuid.UUID) error {
	task, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	task.IsDeleted = true
	task.DeletedAt = &now
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		s.log.Error("Failed to soft delete task",
			zap.String("task_id", id.String()),
			zap.Error(err))
		return err
	}

	s.recordHistory(ctx, task.ID, userID, HistoryActionDeleted, "", "", "")

	s.log.Info("Task moved to trash",
		zap.String("task_id", id.String()),
		zap.String("user_id", userID.String()))
	return nil
}

func (s *taskService) RestoreTask(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	task, err := s.repo.FindTrashedByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	task.IsDeleted = false
	task.DeletedAt = nil
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		s.log.Error("Failed to restore task",
			zap.String("task_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	s.recordHistory(ctx, task.ID, userID, HistoryActionRestored, "", "", "")
	return task, nil
}

// PermanentlyDeleteTask removes a trashed task for good, category
// links and history included. The audit log line is the only record
// left behind.
func (s *taskService) PermanentlyDeleteTask(ctx context.Context, id, userID uuid.UUID) error {
	task, err := s.repo.FindTrashedByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.HardDelete(ctx, task.ID); err != nil {
		s.log.Error("Failed to permanently delete task",
			zap.String("task_id", id.String()),
			zap.Error(err))
		return err
	}

	s.audit.PermanentDelete(task.ID, userID, task.Title)
	return nil
}

func (s *taskService) ListTrash(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, int64, error) {
	return s.repo.FindTrashed(ctx, userID, limit, offset)
}

// EmptyTrash permanently deletes everything in one user's trash. The
// first failure aborts the run; already-deleted rows are counted as
// done so a retry converges.
func (s *taskService) EmptyTrash(ctx context.Context, userID uuid.UUID) (int, error) {
	ids, err := s.repo.FindTrashedIDs(ctx, userID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, id := range ids {
		if err := s.repo.HardDelete(ctx, id); err != nil {
			if err == ErrTaskNotFound {
				continue
			}
			return deleted, err
		}
		s.audit.PermanentDelete(id, userID, "")
		deleted++
	}

	s.log.Info("Trash emptied",
		zap.String("user_id", userID.String()),
		zap.Int("deleted", deleted))
	return deleted, nil
}

// PurgeOldTrashedTasks hard-deletes every task, regardless of owner,
// that has been in the trash longer than thresholdDays. The sweep is
// idempotent: a re-run finds nothing older than the cutoff and does
// no work. It fails closed, aborting on the first error so nothing is
// removed past a fault.
func (s *taskService) PurgeOldTrashedTasks(ctx context.Context, thresholdDays int) (int, error) {
	if thresholdDays <= 0 {
		thresholdDays = TrashRetentionDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -thresholdDays)

	tasks, err := s.repo.FindPurgeable(ctx, cutoff)
	if err != nil {
		s.audit.PurgeRun(0, thresholdDays, err)
		return 0, err
	}

	purged := 0
	for _, t := range tasks {
		if err := s.repo.HardDelete(ctx, t.ID); err != nil {
			if err == ErrTaskNotFound {
				// Deleted concurrently; already in the desired state.
				continue
			}
			s.audit.PurgeRun(purged, thresholdDays, err)
			return purged, err
		}
		s.audit.Purged(t.ID, t.UserID, t.DeletedAt)
		purged++
	}

	s.audit.PurgeRun(purged, thresholdDays, nil)
	return purged, nil
}

// BulkUpdate applies one action to many tasks, best effort. A failure
// on one task is recorded and the rest of the batch continues.
func (s *taskService) BulkUpdate(ctx context.Context, userID uuid.UUID, input BulkUpdateInput) (*BulkResult, error) {
	if !input.Action.IsValid() {
		return nil, fmt.Errorf("%w: unknown bulk action %q", ErrInvalidInput, input.Action)
	}
	if len(input.TaskIDs) == 0 {
		return nil, fmt.Errorf("%w: no task ids supplied", ErrInvalidInput)
	}

	// Resolve action parameters once, up front.
	var targetStatus TaskStatus
	var targetPriority TaskPriority
	switch input.Action {
	case BulkActionComplete:
		targetStatus = TaskStatusCompleted
	case BulkActionChangeStatus:
		targetStatus = TaskStatus(input.Status)
		if !targetStatus.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
		}
	case BulkActionChangePriority:
		targetPriority = TaskPriority(input.Priority)
		if !targetPriority.IsValid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, input.Priority)
		}
	}

	result := &BulkResult{}
	for _, id := range input.TaskIDs {
		var err error
		switch input.Action {
		case BulkActionComplete, BulkActionChangeStatus:
			_, err = s.UpdateTaskStatus(ctx, id, userID, string(targetStatus))
		case BulkActionChangePriority:
			err = s.bulkChangePriority(ctx, id, userID, targetPriority)
		case BulkActionDelete:
			err = s.DeleteTask(ctx, id, userID)
		}

		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkError{TaskID: id, Message: err.Error()})
			continue
		}
		result.Succeeded++
	}

	s.log.Info("Bulk task update",
		zap.String("user_id", userID.String()),
		zap.String("action", string(input.Action)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (s *taskService) bulkChangePriority(ctx context.Context, id, userID uuid.UUID, priority TaskPriority) error {
	task, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if task.Priority == priority {
		return nil
	}

	old := task.Priority
	task.Priority = priority
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return err
	}

	s.recordHistory(ctx, task.ID, userID, HistoryActionUpdated, "priority", string(old), string(priority))
	return nil
}

// ListTaskHistory returns a task's change log, newest first. The
// ownership check rides on FindTrashedByID falling back so trashed
// tasks keep their history visible until purged.
func (s *taskService) ListTaskHistory(ctx context.Context, taskID, userID uuid.UUID) ([]TaskHistory, error) {
	if _, err := s.repo.FindByID(ctx, taskID, userID); err != nil {
		if err != ErrTaskNotFound {
			return nil, err
		}
		if _, err := s.repo.FindTrashedByID(ctx, taskID, userID); err != nil {
			return nil, err
		}
	}
	return s.repo.FindHistory(ctx, taskID)
}
