// Package jobs provides scheduled background tasks for the ordering core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the ordering flow depends on.
//
// # Available Jobs
//
// 1. SequenceCleanupJob - Runs shortly after the business-day cutoff to prune
// order-number counter rows older than the retention window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cleanupHandler, retentionDays, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The cleanup job runs at 06:30 every day, half an hour after the business-day
// cutoff, so the counters of the day that just closed are never touched while
// intake might still be handing out numbers against them.
package jobs
