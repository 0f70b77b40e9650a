// Package jobs provides scheduled background tasks for the dispatch board.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic reconciliation the board requires.
//
// # Available Jobs
//
// 1. BoardRefreshJob - Polls the scheduling backend on a fixed interval and
// merges each snapshot into the local board, preserving unacknowledged edits
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshBoardHandler, pollIntervalSeconds, logger)
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
// The refresh job uses an "@every Ns" expression built from the configured
// poll interval. Each tick issues a merge refresh; a tick that lands while a
// save call is in flight is skipped and the next tick reconciles instead.
//
// # Error Handling
//
// - Fetch failures are logged and leave the board untouched
// - Skipped merges are logged at debug level, they are expected during saves
package jobs
