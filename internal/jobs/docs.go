// Package jobs provides scheduled background tasks for the laundry service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order lifecycle depends on.
//
// # Available Jobs
//
// 1. NotificationDispatchJob - Sweeps the notification outbox every 30 seconds,
// sending queued and previously failed notifications to the broker
// 2. ArchiveOrdersJob - Runs nightly to archive delivered orders past the
// retention window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, archiveHandler, systemActorID, retention, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both jobs log failures and wait for the next tick; a broken sweep never
// crashes the process
// - Sends that keep failing stop being retried once the notification
// exhausts its attempt budget
// - Failed job starts will stop any already running jobs
package jobs
