// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs use github.com/robfig/cron/v3 with six-field expressions (seconds
// first). A run that is still in progress when the next tick fires makes
// that tick a no-op.
//
// # Available Jobs
//
// StaleOrderCancellationJob cancels orders that stayed PENDING longer than
// the configured age, telling their customers that payment timed out.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewStaleOrderCancellationJob(handler, "0 * * * * *", 15*time.Minute, 100, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
