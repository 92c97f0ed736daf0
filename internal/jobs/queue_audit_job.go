package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultQueueAuditSchedule runs the audit once a minute.
const DefaultQueueAuditSchedule = "0 * * * * *"

type queueAuditor interface {
	Handle(ctx context.Context, query queries.AuditQueueQuery) (queries.AuditReport, error)
}

// QueueAuditJob periodically checks the committed queue and logs every
// finding. Express orders behind Standard ones are logged at info since an
// operator may have put them there. It never changes data; repairs go
// through the normalize command.
type QueueAuditJob struct {
	auditor  queueAuditor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewQueueAuditJob creates the job. schedule is a six-field cron expression
// (seconds first); an empty schedule means DefaultQueueAuditSchedule.
func NewQueueAuditJob(auditor queueAuditor, schedule string, logger *slog.Logger) *QueueAuditJob {
	if schedule == "" {
		schedule = DefaultQueueAuditSchedule
	}
	return &QueueAuditJob{
		auditor:  auditor,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "queue_audit_job"),
	}
}

func (j *QueueAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue audit job started", "schedule", j.schedule)
	return nil
}

// RunOnce audits the queue and reports whether it is healthy. A failed
// audit counts as unhealthy.
func (j *QueueAuditJob) RunOnce(ctx context.Context) bool {
	report, err := j.auditor.Handle(ctx, queries.NewAuditQueueQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue audit failed", "error", err)
		return false
	}

	for _, v := range report.Violations {
		attrs := []any{
			"kind", string(v.Kind),
			"order_id", v.OrderID.String(),
			"position", v.Position,
			"active_count", report.ActiveCount,
		}
		if !v.Kind.BreaksContiguity() {
			j.logger.InfoContext(ctx, "Express order behind a standard one, expected after manual repositioning", attrs...)
			continue
		}
		j.logger.ErrorContext(ctx, "Queue rule violated", attrs...)
	}
	if !report.Healthy() {
		j.logger.WarnContext(ctx, "Queue needs normalization", "violations", len(report.Violations))
		return false
	}
	return true
}

func (j *QueueAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Queue audit job stopped")
}
