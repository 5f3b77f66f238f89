package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// BacklogMonitorJob periodically samples the unassigned-order backlog and
// logs its size. Dispatch itself is courier initiated, so the backlog only
// shrinks when couriers call in; this job gives operators visibility into
// orders waiting for one.
type BacklogMonitorJob struct {
	handler queries.GetUnassignedOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBacklogMonitorJob creates a job that samples the backlog once a minute.
func NewBacklogMonitorJob(handler queries.GetUnassignedOrdersQueryHandler, logger *slog.Logger) *BacklogMonitorJob {
	return &BacklogMonitorJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "backlog_monitor_job"),
	}
}

// Start begins the backlog monitor job.
func (j *BacklogMonitorJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		backlog, err := j.handler.Handle(ctx, queries.NewGetUnassignedOrdersQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Backlog monitor job failed", "error", err)
			return
		}

		if len(backlog) == 0 {
			return
		}

		oldest := backlog[0].ID
		j.logger.InfoContext(ctx, "Orders waiting for assignment",
			"count", len(backlog), "oldest_order_id", oldest)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backlog monitor job started (running every minute)")
	return nil
}

// Stop stops the backlog monitor job.
func (j *BacklogMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backlog monitor job stopped")
}
