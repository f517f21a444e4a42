// Package jobs provides scheduled background tasks for the shopper service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager, which starts and stops them together:
//
//	jobManager := jobs.NewJobManager(dispatchHandler, shopPosition, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// DispatchOrderJob runs every second and drains the pending-order queue:
// each tick it runs dispatch rounds until either no order is waiting or no
// shopper can take an offer. Expected business outcomes (nothing pending,
// nobody online) are not logged as errors.
package jobs
