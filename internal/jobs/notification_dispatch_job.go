package jobs

import (
	"context"
	"log/slog"

	"washday/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// dispatchBatchLimit caps how many pending notifications one sweep sends.
const dispatchBatchLimit = 50

// NotificationDispatchJob sweeps the notification outbox on a schedule.
// Notifications queue inside business transactions; this job is what
// actually pushes them to the broker, including retries for earlier
// failed sends.
type NotificationDispatchJob struct {
	handler commands.DispatchNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationDispatchJob creates a job that sweeps the outbox every
// thirty seconds.
func NewNotificationDispatchJob(
	handler commands.DispatchNotificationsCommandHandler, logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the outbox sweep.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchNotificationsCommand(dispatchBatchLimit)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox sweep command rejected", "error", err)
			return
		}

		sent, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox sweep failed", "error", err)
			return
		}
		if sent > 0 {
			j.logger.InfoContext(ctx, "Outbox sweep delivered notifications", "sent", sent)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started (running every 30 seconds)")
	return nil
}

// Stop stops the outbox sweep.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
