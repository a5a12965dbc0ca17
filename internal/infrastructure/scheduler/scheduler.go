package scheduler

import (
	"context"
	"time"

	"github.com/todotracker/backend/internal/domain/task"
	"github.com/todotracker/backend/pkg/logger"
	"go.uber.org/zap"
)

// Scheduler runs the periodic trash retention sweep.
type Scheduler struct {
	taskService   task.Service
	logger        *logger.Logger
	retentionDays int
	sweepInterval time.Duration
	stop          chan struct{}
}

func NewScheduler(taskService task.Service, logger *logger.Logger, retentionDays int, sweepInterval time.Duration) *Scheduler {
	if retentionDays <= 0 {
		retentionDays = task.TrashRetentionDays
	}
	if sweepInterval <= 0 {
		sweepInterval = 24 * time.Hour
	}
	return &Scheduler{
		taskService:   taskService,
		logger:        logger,
		retentionDays: retentionDays,
		sweepInterval: sweepInterval,
		stop:          make(chan struct{}),
	}
}

// Start runs one sweep immediately, then repeats on the configured
// interval until Stop is called.
func (s *Scheduler) Start() {
	s.runPurge()

	s.logger.Info("Trash retention scheduler initialized",
		zap.Int("retention_days", s.retentionDays),
		zap.Duration("sweep_interval", s.sweepInterval),
	)

	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runPurge()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop. A sweep already in flight finishes.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runPurge() {
	ctx := context.Background()
	startTime := time.Now()

	s.logger.Info("Starting trash retention sweep", zap.Time("start_time", startTime))

	purged, err := s.taskService.PurgeOldTrashedTasks(ctx, s.retentionDays)
	if err != nil {
		// The sweep is idempotent, so a failed run just leaves work
		// for the next one.
		s.logger.Error("Trash retention sweep failed",
			zap.Int("purged_before_failure", purged),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Completed trash retention sweep",
		zap.Int("purged", purged),
		zap.Duration("duration", time.Since(startTime)),
	)
}
