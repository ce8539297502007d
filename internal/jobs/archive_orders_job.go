package jobs

import (
	"context"
	"log/slog"
	"time"

	"washday/internal/core/application/usecases/commands"
	"washday/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// ArchiveOrdersJob retires delivered orders past the retention window.
// Runs nightly; each archive is recorded in the order's history under the
// configured system actor.
type ArchiveOrdersJob struct {
	handler       commands.ArchiveOrdersCommandHandler
	systemActorID kernel.UUID
	retention     time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewArchiveOrdersJob creates a job that archives delivered orders older
// than the retention window, running nightly at 03:00.
func NewArchiveOrdersJob(
	handler commands.ArchiveOrdersCommandHandler,
	systemActorID kernel.UUID,
	retention time.Duration,
	logger *slog.Logger,
) *ArchiveOrdersJob {
	return &ArchiveOrdersJob{
		handler:       handler,
		systemActorID: systemActorID,
		retention:     retention,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "archive_orders_job"),
	}
}

// Start begins the nightly retention sweep.
func (j *ArchiveOrdersJob) Start() error {
	_, err := j.cron.AddFunc("0 0 3 * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.retention)

		cmd, err := commands.NewArchiveOrdersCommand(j.systemActorID, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Retention sweep command rejected", "error", err)
			return
		}

		archived, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Retention sweep failed", "error", err)
			return
		}
		if archived > 0 {
			j.logger.InfoContext(ctx, "Retention sweep archived orders", "archived", archived)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Archive orders job started (running nightly at 03:00)")
	return nil
}

// Stop stops the retention sweep.
func (j *ArchiveOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Archive orders job stopped")
}
