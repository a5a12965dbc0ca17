package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memRepo is an in-memory TaskRepository for service tests. links maps
// a task to its category ids, standing in for the join table.
type memRepo struct {
	tasks         map[uuid.UUID]*Task
	links         map[uuid.UUID][]uuid.UUID
	history       []TaskHistory
	hardDeleteErr map[uuid.UUID]error
}

func newMemRepo() *memRepo {
	return &memRepo{
		tasks:         make(map[uuid.UUID]*Task),
		links:         make(map[uuid.UUID][]uuid.UUID),
		hardDeleteErr: make(map[uuid.UUID]error),
	}
}

func (m *memRepo) Create(ctx context.Context, t *Task) error {
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *memRepo) FindByID(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID || t.IsDeleted {
		return nil, ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memRepo) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.UserID != filter.UserID || t.IsDeleted {
			continue
		}
		if !filter.IncludeArchived && t.IsArchived {
			continue
		}
		if len(filter.Statuses) > 0 && !statusIn(t.Status, filter.Statuses) {
			continue
		}
		if len(filter.Priorities) > 0 && !priorityIn(t.Priority, filter.Priorities) {
			continue
		}
		if filter.Search != "" && !matchesSearch(t, filter.Search) {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !m.linkedToAny(t.ID, filter.CategoryIDs) {
			continue
		}
		if filter.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*filter.DueFrom)) {
			continue
		}
		if filter.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*filter.DueTo)) {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func statusIn(s TaskStatus, set []TaskStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func priorityIn(p TaskPriority, set []TaskPriority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}

func matchesSearch(t *Task, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search)
}

func (m *memRepo) linkedToAny(taskID uuid.UUID, categoryIDs []uuid.UUID) bool {
	for _, linked := range m.links[taskID] {
		for _, want := range categoryIDs {
			if linked == want {
				return true
			}
		}
	}
	return false
}

func (m *memRepo) FindDueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Task, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.UserID != userID || t.IsDeleted || t.IsArchived || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(from) || t.DueDate.After(to) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (m *memRepo) Update(ctx context.Context, t *Task) error {
	if _, ok := m.tasks[t.ID]; !ok {
		return ErrTaskNotFound
	}
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *memRepo) FindTrashedByID(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID || !t.IsDeleted {
		return nil, ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memRepo) FindTrashed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, int64, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.UserID == userID && t.IsDeleted {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) FindTrashedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, t := range m.tasks {
		if t.UserID == userID && t.IsDeleted {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

func (m *memRepo) FindPurgeable(ctx context.Context, cutoff time.Time) ([]Task, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.IsDeleted && t.DeletedAt != nil && !t.DeletedAt.After(cutoff) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err, ok := m.hardDeleteErr[id]; ok {
		return err
	}
	if _, ok := m.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memRepo) AppendHistory(ctx context.Context, entry *TaskHistory) error {
	m.history = append(m.history, *entry)
	return nil
}

func (m *memRepo) FindHistory(ctx context.Context, taskID uuid.UUID) ([]TaskHistory, error) {
	var out []TaskHistory
	for _, h := range m.history {
		if h.TaskID == taskID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memRepo) historyActions(taskID uuid.UUID) []HistoryAction {
	var out []HistoryAction
	for _, h := range m.history {
		if h.TaskID == taskID {
			out = append(out, h.Action)
		}
	}
	return out
}

func newTestService(repo *memRepo) Service {
	return NewService(repo, NewAuditLogger(true), zap.NewNop())
}

func TestCreateTaskNormalization(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name             string
		input            CreateTaskInput
		wantErr          bool
		expectedStatus   TaskStatus
		expectedPriority TaskPriority
	}{
		{
			name:             "Defaults applied when status and priority are empty",
			input:            CreateTaskInput{UserID: owner, Title: "write report"},
			expectedStatus:   TaskStatusPending,
			expectedPriority: TaskPriorityMedium,
		},
		{
			name:             "Unknown status falls back to pending",
			input:            CreateTaskInput{UserID: owner, Title: "write report", Status: "urgent!!"},
			expectedStatus:   TaskStatusPending,
			expectedPriority: TaskPriorityMedium,
		},
		{
			name:             "Unknown priority falls back to medium",
			input:            CreateTaskInput{UserID: owner, Title: "write report", Priority: "critical"},
			expectedStatus:   TaskStatusPending,
			expectedPriority: TaskPriorityMedium,
		},
		{
			name:             "Valid values kept as-is",
			input:            CreateTaskInput{UserID: owner, Title: "write report", Status: "in_progress", Priority: "high"},
			expectedStatus:   TaskStatusInProgress,
			expectedPriority: TaskPriorityHigh,
		},
		{
			name:    "Missing title rejected",
			input:   CreateTaskInput{UserID: owner},
			wantErr: true,
		},
		{
			name:    "Overlong title rejected",
			input:   CreateTaskInput{UserID: owner, Title: string(make([]byte, 256))},
			wantErr: true,
		},
		{
			name:    "Impossible due date rejected",
			input:   CreateTaskInput{UserID: owner, Title: "write report", DueDate: "2025-02-30"},
			wantErr: true,
		},
		{
			name:    "Malformed due date rejected",
			input:   CreateTaskInput{UserID: owner, Title: "write report", DueDate: "tomorrow"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			svc := newTestService(repo)

			created, err := svc.CreateTask(context.Background(), tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Empty(t, repo.tasks, "no task should be written on validation failure")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, created.Status)
			assert.Equal(t, tt.expectedPriority, created.Priority)
			assert.Equal(t, []HistoryAction{HistoryActionCreated}, repo.historyActions(created.ID))
		})
	}
}

func TestCreateTaskCompletedSetsCompletedAt(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: uuid.New(),
		Title:  "already done",
		Status: "completed",
	})
	require.NoError(t, err)
	assert.NotNil(t, created.CompletedAt)
}

func strPtr(s string) *string { return &s }

func TestUpdateTaskFieldHistory(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: owner, Title: "draft", Priority: "low",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(context.Background(), created.ID, owner, UpdateTaskInput{
		Title:    strPtr("final draft"),
		Priority: strPtr("high"),
		DueDate:  strPtr("2026-10-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "final draft", updated.Title)
	assert.Equal(t, TaskPriorityHigh, updated.Priority)
	require.NotNil(t, updated.DueDate)

	fields := map[string][2]string{}
	for _, h := range repo.history {
		if h.Action == HistoryActionUpdated {
			fields[h.FieldName] = [2]string{h.OldValue, h.NewValue}
		}
	}
	assert.Equal(t, [2]string{"draft", "final draft"}, fields["title"])
	assert.Equal(t, [2]string{"low", "high"}, fields["priority"])
	assert.Equal(t, [2]string{"", "2026-10-01"}, fields["due_date"])
}

func TestUpdateTaskAllOrNothing(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "draft"})
	require.NoError(t, err)
	historyBefore := len(repo.history)

	// Valid priority change plus invalid title: nothing may be written.
	_, err = svc.UpdateTask(context.Background(), created.ID, owner, UpdateTaskInput{
		Title:    strPtr(""),
		Priority: strPtr("high"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	stored := repo.tasks[created.ID]
	assert.Equal(t, "draft", stored.Title)
	assert.Equal(t, TaskPriorityMedium, stored.Priority)
	assert.Len(t, repo.history, historyBefore)
}

func TestUpdateTaskNoChangesNoHistory(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "draft"})
	require.NoError(t, err)
	historyBefore := len(repo.history)

	updated, err := svc.UpdateTask(context.Background(), created.ID, owner, UpdateTaskInput{
		Title: strPtr("draft"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt)
	assert.Len(t, repo.history, historyBefore)
}

func TestUpdateTaskOwnership(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "mine"})
	require.NoError(t, err)

	_, err = svc.UpdateTask(context.Background(), created.ID, uuid.New(), UpdateTaskInput{
		Title: strPtr("stolen"),
	})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestListTasksCategoryFilterUnion(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()
	catA, catB, catC := uuid.New(), uuid.New(), uuid.New()

	mk := func(title string, categories ...uuid.UUID) uuid.UUID {
		created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: title})
		require.NoError(t, err)
		repo.links[created.ID] = categories
		return created.ID
	}

	inA := mk("linked to a", catA)
	inB := mk("linked to b", catB)
	inBoth := mk("linked to both", catA, catB)
	mk("linked to c", catC)
	mk("unlinked")

	tasks, total, err := svc.ListTasks(context.Background(), TaskFilter{
		UserID:      owner,
		CategoryIDs: []uuid.UUID{catA, catB},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	got := map[uuid.UUID]int{}
	for _, tsk := range tasks {
		got[tsk.ID]++
	}
	// Exactly the union of A and B; a task in both appears once.
	assert.Equal(t, map[uuid.UUID]int{inA: 1, inB: 1, inBoth: 1}, got)
}

func TestListTasksArchivedGate(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	active, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "active"})
	require.NoError(t, err)
	archived, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "old"})
	require.NoError(t, err)
	_, err = svc.ArchiveTask(context.Background(), archived.ID, owner)
	require.NoError(t, err)

	// Archived tasks are hidden unless asked for.
	tasks, total, err := svc.ListTasks(context.Background(), TaskFilter{UserID: owner})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, active.ID, tasks[0].ID)

	tasks, total, err = svc.ListTasks(context.Background(), TaskFilter{UserID: owner, IncludeArchived: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, tasks, 2)
}

func TestUpdateTaskStatusTransitions(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "task"})
	require.NoError(t, err)

	// Unknown status is rejected on the dedicated endpoint.
	_, err = svc.UpdateTaskStatus(context.Background(), created.ID, owner, "finished")
	assert.ErrorIs(t, err, ErrInvalidInput)

	completed, err := svc.UpdateTaskStatus(context.Background(), created.ID, owner, "completed")
	require.NoError(t, err)
	assert.NotNil(t, completed.CompletedAt)

	// Leaving completed clears the completion timestamp.
	reopened, err := svc.UpdateTaskStatus(context.Background(), created.ID, owner, "in_progress")
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	var statusChanges []TaskHistory
	for _, h := range repo.history {
		if h.Action == HistoryActionStatusChanged {
			statusChanges = append(statusChanges, h)
		}
	}
	require.Len(t, statusChanges, 2)
	assert.Equal(t, "pending", statusChanges[0].OldValue)
	assert.Equal(t, "completed", statusChanges[0].NewValue)
	assert.Equal(t, "completed", statusChanges[1].OldValue)
	assert.Equal(t, "in_progress", statusChanges[1].NewValue)
}

func TestDeleteAndRestore(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "task"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(context.Background(), created.ID, owner))

	// Trashed tasks disappear from normal reads.
	_, err = svc.GetTask(context.Background(), created.ID, owner)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Deleting again fails: the task is no longer visible.
	err = svc.DeleteTask(context.Background(), created.ID, owner)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	restored, err := svc.RestoreTask(context.Background(), created.ID, owner)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)

	_, err = svc.GetTask(context.Background(), created.ID, owner)
	assert.NoError(t, err)

	assert.Equal(t,
		[]HistoryAction{HistoryActionCreated, HistoryActionDeleted, HistoryActionRestored},
		repo.historyActions(created.ID))
}

func trashTask(t *testing.T, repo *memRepo, owner uuid.UUID, deletedAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	da := deletedAt
	repo.tasks[id] = &Task{
		ID:        id,
		UserID:    owner,
		Title:     "trashed",
		Status:    TaskStatusPending,
		Priority:  TaskPriorityMedium,
		IsDeleted: true,
		DeletedAt: &da,
	}
	return id
}

func TestPurgeOldTrashedTasks(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()
	now := time.Now().UTC()

	oldID := trashTask(t, repo, owner, now.AddDate(0, 0, -40))
	otherOwnerOldID := trashTask(t, repo, uuid.New(), now.AddDate(0, 0, -31))
	recentID := trashTask(t, repo, owner, now.AddDate(0, 0, -5))

	purged, err := svc.PurgeOldTrashedTasks(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, purged)

	// The sweep crosses user boundaries but respects the cutoff.
	assert.NotContains(t, repo.tasks, oldID)
	assert.NotContains(t, repo.tasks, otherOwnerOldID)
	assert.Contains(t, repo.tasks, recentID)

	// Idempotent: nothing left older than the cutoff.
	purged, err = svc.PurgeOldTrashedTasks(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 0, purged)
}

func TestPurgeFailsClosed(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()
	now := time.Now().UTC()

	trashTask(t, repo, owner, now.AddDate(0, 0, -40))
	brokenID := trashTask(t, repo, owner, now.AddDate(0, 0, -40))
	repo.hardDeleteErr[brokenID] = errors.New("disk on fire")

	purged, err := svc.PurgeOldTrashedTasks(context.Background(), 30)
	assert.Error(t, err)
	// One of the two may have gone before the failure, the broken one
	// must still be present.
	assert.LessOrEqual(t, purged, 1)
	assert.Contains(t, repo.tasks, brokenID)
}

func TestEmptyTrash(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()
	other := uuid.New()
	now := time.Now().UTC()

	trashTask(t, repo, owner, now)
	trashTask(t, repo, owner, now.AddDate(0, 0, -100))
	keptID := trashTask(t, repo, other, now)

	deleted, err := svc.EmptyTrash(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// Only the caller's trash is touched, regardless of age.
	assert.Len(t, repo.tasks, 1)
	assert.Contains(t, repo.tasks, keptID)
}

func TestBulkUpdatePartialFailure(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	first, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "a"})
	require.NoError(t, err)
	second, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "b"})
	require.NoError(t, err)
	missing := uuid.New()

	result, err := svc.BulkUpdate(context.Background(), owner, BulkUpdateInput{
		Action:  BulkActionComplete,
		TaskIDs: []uuid.UUID{first.ID, missing, second.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, missing, result.Errors[0].TaskID)

	assert.Equal(t, TaskStatusCompleted, repo.tasks[first.ID].Status)
	assert.Equal(t, TaskStatusCompleted, repo.tasks[second.ID].Status)
}

func TestBulkUpdateActions(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name    string
		input   BulkUpdateInput
		wantErr bool
		verify  func(t *testing.T, repo *memRepo, id uuid.UUID)
	}{
		{
			name:  "Change priority",
			input: BulkUpdateInput{Action: BulkActionChangePriority, Priority: "high"},
			verify: func(t *testing.T, repo *memRepo, id uuid.UUID) {
				assert.Equal(t, TaskPriorityHigh, repo.tasks[id].Priority)
			},
		},
		{
			name:  "Change status",
			input: BulkUpdateInput{Action: BulkActionChangeStatus, Status: "in_progress"},
			verify: func(t *testing.T, repo *memRepo, id uuid.UUID) {
				assert.Equal(t, TaskStatusInProgress, repo.tasks[id].Status)
			},
		},
		{
			name:  "Bulk delete moves to trash",
			input: BulkUpdateInput{Action: BulkActionDelete},
			verify: func(t *testing.T, repo *memRepo, id uuid.UUID) {
				assert.True(t, repo.tasks[id].IsDeleted)
			},
		},
		{
			name:    "Unknown action rejected",
			input:   BulkUpdateInput{Action: BulkAction("archive")},
			wantErr: true,
		},
		{
			name:    "Change status without a valid status rejected",
			input:   BulkUpdateInput{Action: BulkActionChangeStatus, Status: "done"},
			wantErr: true,
		},
		{
			name:    "Empty batch rejected",
			input:   BulkUpdateInput{Action: BulkActionComplete, TaskIDs: []uuid.UUID{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			svc := newTestService(repo)

			created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "task"})
			require.NoError(t, err)

			input := tt.input
			if input.TaskIDs == nil {
				input.TaskIDs = []uuid.UUID{created.ID}
			}

			result, err := svc.BulkUpdate(context.Background(), owner, input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, result.Succeeded)
			tt.verify(t, repo, created.ID)
		})
	}
}

func TestListTaskHistoryCoversTrashedTasks(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	owner := uuid.New()

	created, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: owner, Title: "task"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTask(context.Background(), created.ID, owner))

	history, err := svc.ListTaskHistory(context.Background(), created.ID, owner)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	// Another user cannot read the history.
	_, err = svc.ListTaskHistory(context.Background(), created.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name     string
		orderBy  string
		orderDir string
		expected string
	}{
		{"Default", "", "", "created_at DESC"},
		{"Unknown column falls back", "password_hash", "ASC", "created_at ASC"},
		{"Unknown direction falls back", "title", "sideways", "title DESC"},
		{"Ascending title", "title", "asc", "title ASC"},
		{"Due date keeps NULLs last ascending", "due_date", "ASC", "due_date IS NULL, due_date ASC"},
		{"Due date keeps NULLs last descending", "due_date", "DESC", "due_date IS NULL, due_date DESC"},
		{"Priority sorts by rank", "priority", "ASC", "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, orderClause(tt.orderBy, tt.orderDir))
		})
	}
}
