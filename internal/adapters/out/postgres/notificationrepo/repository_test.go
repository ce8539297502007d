package notificationrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"washday/internal/adapters/out/postgres/notificationrepo"
	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepository(t *testing.T) *notificationrepo.GormNotificationRepository {
	t.Helper()

	// A named shared in-memory database keeps the schema visible across
	// pooled connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&notificationrepo.NotificationDTO{}))

	return notificationrepo.NewGormNotificationRepository(db)
}

func newTestNotification(t *testing.T, createdAt time.Time) *notification.Notification {
	t.Helper()

	aggregate, err := notification.NewNotification(
		kernel.NewUUID(), kernel.NewUUID(),
		notification.KindOrderScheduled, "Your pickup is booked for Jun 10.", createdAt)
	require.NoError(t, err)
	return aggregate
}

func Test_GormNotificationRepository_AddAndGetAllPending(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	older := newTestNotification(t, now.Add(-time.Hour))
	newer := newTestNotification(t, now)

	require.NoError(t, repository.Add(ctx, newer))
	require.NoError(t, repository.Add(ctx, older))

	pending, err := repository.GetAllPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.True(t, pending[0].ID().IsEqual(older.ID()))
	assert.True(t, pending[1].ID().IsEqual(newer.ID()))
}

func Test_GormNotificationRepository_GetAllPending_RespectsLimit(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, repository.Add(ctx, newTestNotification(t, now.Add(time.Duration(i)*time.Minute))))
	}

	pending, err := repository.GetAllPending(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func Test_GormNotificationRepository_Update_RemovesSentFromPending(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	queued := newTestNotification(t, time.Now().UTC())
	require.NoError(t, repository.Add(ctx, queued))

	queued.MarkSent(time.Now().UTC())
	require.NoError(t, repository.Update(ctx, queued))

	pending, err := repository.GetAllPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func Test_GormNotificationRepository_Update_KeepsFailedAttemptsPending(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	queued := newTestNotification(t, time.Now().UTC())
	require.NoError(t, repository.Add(ctx, queued))

	queued.MarkAttemptFailed()
	require.NoError(t, repository.Update(ctx, queued))

	pending, err := repository.GetAllPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts())
}
