// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// QueueAuditJob reads the committed active queue, checks that positions run
// 1..k without gaps or duplicates and that every Express order sits ahead of
// every Standard order, and logs each violation. It never repairs anything;
// an operator runs the normalize command when the audit reports a problem.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(auditHandler, config.QueueAuditSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field.
// The default "0 * * * * *" runs the audit at the start of every minute.
package jobs
