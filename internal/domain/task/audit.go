package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditLogger records irreversible deletions out of band. A purged or
// permanently deleted task takes its history rows with it, so the only
// trace left is this log line.
type AuditLogger struct {
	log *logrus.Logger
}

func NewAuditLogger(debug bool) *AuditLogger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return &AuditLogger{log: l}
}

// PermanentDelete records a user-initiated hard delete.
func (a *AuditLogger) PermanentDelete(taskID, userID uuid.UUID, title string) {
	a.log.WithFields(logrus.Fields{
		"event":   "task_permanently_deleted",
		"task_id": taskID.String(),
		"user_id": userID.String(),
		"title":   title,
	}).Info("task permanently deleted")
}

// Purged records one task removed by the retention sweep.
func (a *AuditLogger) Purged(taskID, userID uuid.UUID, deletedAt *time.Time) {
	fields := logrus.Fields{
		"event":   "task_purged",
		"task_id": taskID.String(),
		"user_id": userID.String(),
	}
	if deletedAt != nil {
		fields["deleted_at"] = deletedAt.UTC().Format(time.RFC3339)
	}
	a.log.WithFields(fields).Info("trashed task purged")
}

// PurgeRun records the outcome of a whole retention sweep.
func (a *AuditLogger) PurgeRun(purged int, thresholdDays int, err error) {
	fields := logrus.Fields{
		"event":          "trash_purge_run",
		"purged":         purged,
		"threshold_days": thresholdDays,
	}
	if err != nil {
		fields["error"] = err.Error()
		a.log.WithFields(fields).Error("trash purge aborted")
		return
	}
	a.log.WithFields(fields).Info("trash purge completed")
}
