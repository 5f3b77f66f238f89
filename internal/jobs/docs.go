// Package jobs provides scheduled background tasks for the dispatch system.
//
// Jobs are cron based (github.com/robfig/cron/v3) and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(backlogHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// BacklogMonitorJob runs every minute and logs the size of the unassigned
// order backlog. Assignment is courier initiated, so the job observes only;
// it never dispatches on its own.
package jobs
