package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todotracker/backend/internal/domain/task"
	"go.uber.org/zap"
)

// stubTaskRepo serves a fixed task list to the overlay.
type stubTaskRepo struct {
	task.TaskRepository
	tasks []task.Task
}

func (s *stubTaskRepo) FindDueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]task.Task, error) {
	var out []task.Task
	for _, t := range s.tasks {
		if t.DueDate == nil || t.DueDate.Before(from) || t.DueDate.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func dueTask(title string, priority task.TaskPriority, due time.Time) task.Task {
	d := due
	return task.Task{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    title,
		Status:   task.TaskStatusPending,
		Priority: priority,
		DueDate:  &d,
	}
}

func TestMonthViewOverlay(t *testing.T) {
	day10 := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	day12 := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	repo := &stubTaskRepo{tasks: []task.Task{
		dueTask("low on the 10th", task.TaskPriorityLow, day10),
		dueTask("high on the 10th", task.TaskPriorityHigh, day10),
		dueTask("medium on the 12th", task.TaskPriorityMedium, day12),
		dueTask("outside the grid", task.TaskPriorityHigh, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc := NewService(repo, zap.NewNop())

	view, err := svc.MonthView(context.Background(), uuid.New(), 2026, time.September)
	require.NoError(t, err)
	require.Len(t, view.Days, MonthGridSize)

	assert.Len(t, view.Tasks, 2)

	tenth := view.Tasks["2026-09-10"]
	require.Len(t, tenth, 2)
	// Same due date: higher priority comes first.
	assert.Equal(t, "high on the 10th", tenth[0].Title)
	assert.Equal(t, "low on the 10th", tenth[1].Title)

	twelfth := view.Tasks["2026-09-12"]
	require.Len(t, twelfth, 1)
	assert.Equal(t, "medium on the 12th", twelfth[0].Title)
}

func TestMonthViewRejectsBadMonth(t *testing.T) {
	svc := NewService(&stubTaskRepo{}, zap.NewNop())

	_, err := svc.MonthView(context.Background(), uuid.New(), 2026, time.Month(13))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.MonthView(context.Background(), uuid.New(), 0, time.March)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWeekViewOverlay(t *testing.T) {
	ref := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	inWeek := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	outOfWeek := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	repo := &stubTaskRepo{tasks: []task.Task{
		dueTask("due friday", task.TaskPriorityMedium, inWeek),
		dueTask("due later", task.TaskPriorityMedium, outOfWeek),
	}}
	svc := NewService(repo, zap.NewNop())

	view, err := svc.WeekView(context.Background(), uuid.New(), ref)
	require.NoError(t, err)
	require.Len(t, view.Days, DaysInWeek)

	assert.Len(t, view.Tasks, 1)
	assert.Len(t, view.Tasks["2026-09-04"], 1)
}
