package calendar

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/todotracker/backend/internal/domain/task"
	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid input")

// View is a calendar grid with each day's due tasks attached.
type View struct {
	Days  []Day                  `json:"days"`
	Tasks map[string][]task.Task `json:"tasks"`
}

// DateKeyLayout keys the task overlay map by calendar day.
const DateKeyLayout = "2006-01-02"

// Service defines the interface for calendar view operations
type Service interface {
	MonthView(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*View, error)
	WeekView(ctx context.Context, userID uuid.UUID, ref time.Time) (*View, error)
}

type calendarService struct {
	tasks task.TaskRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewService(tasks task.TaskRepository, log *zap.Logger) Service {
	return &calendarService{
		tasks: tasks,
		log:   log,
		now:   time.Now,
	}
}

func (s *calendarService) MonthView(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*View, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidInput
	}
	if year < 1 || year > 9999 {
		return nil, ErrInvalidInput
	}

	days := MonthGrid(year, month, s.now().UTC())
	return s.overlay(ctx, userID, days)
}

func (s *calendarService) WeekView(ctx context.Context, userID uuid.UUID, ref time.Time) (*View, error) {
	days := WeekGrid(ref, s.now().UTC())
	return s.overlay(ctx, userID, days)
}

// overlay fetches the user's tasks due inside the grid span and
// groups them by day, ordered by due date then priority, high first.
func (s *calendarService) overlay(ctx context.Context, userID uuid.UUID, days []Day) (*View, error) {
	from := days[0].Date
	to := days[len(days)-1].Date

	tasks, err := s.tasks.FindDueBetween(ctx, userID, from, to)
	if err != nil {
		s.log.Error("Failed to load calendar tasks",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		di, dj := *tasks[i].DueDate, *tasks[j].DueDate
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return tasks[i].Priority.Ordinal() < tasks[j].Priority.Ordinal()
	})

	grouped := make(map[string][]task.Task)
	for _, t := range tasks {
		key := t.DueDate.Format(DateKeyLayout)
		grouped[key] = append(grouped[key], t)
	}

	return &View{Days: days, Tasks: grouped}, nil
}
