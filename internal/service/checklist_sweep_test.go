package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baarcakatalan/daily-tasks-bot/internal/model"
)

type recordingNotifier struct {
	notified []int64
}

func (n *recordingNotifier) NotifyChecklist(userID int64, _ *model.UserDocument) {
	n.notified = append(n.notified, userID)
}

func TestChecklistSweepStampsAndNotifiesOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.EnsureUser(ctx, 1, "a")
	require.NoError(t, err)
	_, err = svc.EnsureUser(ctx, 2, "b")
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	sweep := NewChecklistSweep(svc, testClock, notifier)

	require.NoError(t, sweep.Run(ctx))
	assert.Equal(t, []int64{1, 2}, notifier.notified)
	assert.Equal(t, "2025-08-29", svc.Document(1).LastChecklistDate)

	// A second run on the same day is a no-op.
	require.NoError(t, sweep.Run(ctx))
	assert.Equal(t, []int64{1, 2}, notifier.notified)
}
