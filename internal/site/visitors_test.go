package site_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/portfolio/internal/site"
	"github.com/dmitrymomot/portfolio/pkg/broadcast"
	"github.com/dmitrymomot/portfolio/pkg/notifications"
)

type testNow struct {
	mu  sync.Mutex
	now time.Time
}

func (n *testNow) Now() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.now
}

func (n *testNow) Advance(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.now = n.now.Add(d)
}

func newEvents(t *testing.T) *broadcast.MemoryBroadcaster[notifications.Event] {
	t.Helper()
	b := broadcast.NewMemoryBroadcaster[notifications.Event](8)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestVisitors_NotifierPublishesToVisitorTopic(t *testing.T) {
	t.Parallel()

	events := newEvents(t)
	v := site.NewVisitors(events, site.WithIdleAfter(0))
	t.Cleanup(v.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := events.Subscribe(ctx, "alice")

	n := v.Notifier("alice")
	assert.Same(t, n, v.Notifier("alice"))
	assert.NotSame(t, n, v.Notifier("bob"))

	_, err := n.Notify(notifications.TypeInfo, "hello")
	require.NoError(t, err)

	select {
	case ev := <-sub.Receive():
		assert.Equal(t, notifications.TypeInfo, ev.Kind)
		assert.Equal(t, "hello", ev.Message.Text)
	case <-time.After(time.Second):
		t.Fatal("no event on the visitor topic")
	}
}

func TestVisitors_AcquireRelease(t *testing.T) {
	t.Parallel()

	v := site.NewVisitors(newEvents(t), site.WithIdleAfter(0))
	t.Cleanup(v.Close)

	assert.True(t, v.TryAcquire("alice"))
	assert.False(t, v.TryAcquire("alice"))
	assert.True(t, v.TryAcquire("bob"))

	v.Release("alice")
	assert.True(t, v.TryAcquire("alice"))
}

func TestVisitors_Sweep(t *testing.T) {
	t.Parallel()

	now := &testNow{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	events := newEvents(t)
	v := site.NewVisitors(events,
		site.WithIdleAfter(time.Hour),
		site.WithVisitorsNow(now.Now),
	)
	t.Cleanup(v.Close)

	idle := v.Notifier("idle")
	v.Notifier("streaming")
	require.True(t, v.TryAcquire("busy"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events.Subscribe(ctx, "streaming")

	now.Advance(2 * time.Hour)
	v.Notifier("recent")

	assert.Equal(t, 1, v.Sweep())
	assert.Equal(t, 3, v.Len())

	_, err := idle.Notify(notifications.TypeInfo, "late")
	assert.ErrorIs(t, err, notifications.ErrDisposed)
}

func TestVisitors_CloseStopsSweep(t *testing.T) {
	ignore := goleak.IgnoreCurrent()
	defer goleak.VerifyNone(t, ignore)

	events := broadcast.NewMemoryBroadcaster[notifications.Event](8)
	v := site.NewVisitors(events, site.WithIdleAfter(time.Millisecond))
	n := v.Notifier("alice")

	v.Close()
	v.Close()
	require.NoError(t, events.Close())

	_, err := n.Notify(notifications.TypeError, "gone")
	assert.ErrorIs(t, err, notifications.ErrDisposed)
}
