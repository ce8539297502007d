package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"washday/internal/core/application/usecases/commands"
	"washday/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationDispatchJob *NotificationDispatchJob
	archiveOrdersJob        *ArchiveOrdersJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	dispatchHandler commands.DispatchNotificationsCommandHandler,
	archiveHandler commands.ArchiveOrdersCommandHandler,
	systemActorID kernel.UUID,
	retention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationDispatchJob: NewNotificationDispatchJob(dispatchHandler, logger),
		archiveOrdersJob:        NewArchiveOrdersJob(archiveHandler, systemActorID, retention, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}

	if err := jm.archiveOrdersJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.notificationDispatchJob.Stop()
		return fmt.Errorf("failed to start archive orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationDispatchJob.Stop()
	jm.archiveOrdersJob.Stop()
}
