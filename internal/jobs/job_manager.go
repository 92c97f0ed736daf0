package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager owns the background jobs started by the application.
type JobManager struct {
	queueAuditJob *QueueAuditJob
}

func NewJobManager(
	auditor queueAuditor,
	auditSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		queueAuditJob: NewQueueAuditJob(auditor, auditSchedule, logger),
	}
}

// StartAll schedules every job; the first scheduling failure is returned.
func (jm *JobManager) StartAll() error {
	if err := jm.queueAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start queue audit job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.queueAuditJob.Stop()
}
