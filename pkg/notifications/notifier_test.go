package notifications_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/broadcast"
	"github.com/dmitrymomot/portfolio/pkg/dom"
	"github.com/dmitrymomot/portfolio/pkg/notifications"
)

func newNotifier(region notifications.Region, clock *fakeClock) *notifications.Notifier {
	return notifications.NewNotifier(region,
		notifications.WithClock(clock),
		notifications.WithLogger(slog.New(slog.DiscardHandler)),
	)
}

func TestNotify_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	region := &recordingRegion{}
	n := newNotifier(region, clock)
	defer n.Dispose()

	msg, err := n.Notify(notifications.TypeSuccess, "sent")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(notifications.DefaultTTL), msg.ExpiresAt)

	clock.Advance(notifications.DefaultTTL - time.Millisecond)
	_, ok := n.Current(notifications.TypeSuccess)
	assert.True(t, ok)

	clock.Advance(time.Millisecond)
	_, ok = n.Current(notifications.TypeSuccess)
	assert.False(t, ok)
	assert.Equal(t, []string{"show:success:sent", "clear:success"}, region.Calls())
}

// Two messages of the same kind: only the second is shown at the end and
// exactly one clear happens, five seconds after the second call.
func TestNotify_SameKindReschedules(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	region := &recordingRegion{}
	n := newNotifier(region, clock)
	defer n.Dispose()

	_, err := n.Notify(notifications.TypeError, "first")
	require.NoError(t, err)
	clock.Advance(3 * time.Second)
	_, err = n.Notify(notifications.TypeError, "second")
	require.NoError(t, err)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(3 * time.Second)
	cur, ok := n.Current(notifications.TypeError)
	require.True(t, ok, "first timer must not clear the second message")
	assert.Equal(t, "second", cur.Text)

	clock.Advance(2 * time.Second)
	_, ok = n.Current(notifications.TypeError)
	assert.False(t, ok)

	clock.Advance(time.Minute)
	assert.Equal(t, []string{
		"show:error:first",
		"show:error:second",
		"clear:error",
	}, region.Calls())
}

func TestNotify_KindsAreIndependent(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	region := &recordingRegion{}
	n := newNotifier(region, clock)
	defer n.Dispose()

	_, err := n.Notify(notifications.TypeError, "oops")
	require.NoError(t, err)
	clock.Advance(4 * time.Second)
	_, err = n.Notify(notifications.TypeInfo, "fyi")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, ok := n.Current(notifications.TypeError)
	assert.False(t, ok)
	info, ok := n.Current(notifications.TypeInfo)
	require.True(t, ok)
	assert.Equal(t, "fyi", info.Text)

	assert.Len(t, n.Active(), 1)
	assert.Equal(t, []string{"show:error:oops", "show:info:fyi", "clear:error"}, region.Calls())
}

func TestNotify_UnknownType(t *testing.T) {
	t.Parallel()

	n := newNotifier(&recordingRegion{}, newFakeClock())
	defer n.Dispose()

	_, err := n.Notify("warning", "x")
	assert.ErrorIs(t, err, notifications.ErrUnknownType)
	assert.Empty(t, n.Active())
}

func TestDispose(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	region := &recordingRegion{}
	n := newNotifier(region, clock)

	_, err := n.Notify(notifications.TypeInfo, "bye")
	require.NoError(t, err)
	n.Dispose()
	n.Dispose()

	assert.Zero(t, clock.Pending())
	clock.Advance(time.Minute)
	assert.Equal(t, []string{"show:info:bye"}, region.Calls())

	_, err = n.Notify(notifications.TypeInfo, "again")
	assert.ErrorIs(t, err, notifications.ErrDisposed)
}

func TestNotifier_RealClock(t *testing.T) {
	t.Parallel()

	region := &recordingRegion{}
	n := notifications.NewNotifier(region, notifications.WithTTL(20*time.Millisecond))
	defer n.Dispose()

	_, err := n.Notify(notifications.TypeSuccess, "quick")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, ok := n.Current(notifications.TypeSuccess)
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestDocumentRegion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, notifications.Regions(nil).Render(context.Background(), &buf))

	doc, err := dom.ParseString(buf.String())
	require.NoError(t, err)

	clock := newFakeClock()
	n := newNotifier(notifications.NewDocumentRegion(doc), clock)
	defer n.Dispose()

	_, err = n.Notify(notifications.TypeError, "name required")
	require.NoError(t, err)

	el, ok := doc.ElementByID("notification-error")
	require.True(t, ok)
	assert.Equal(t, "name required", el.Text())
	_, hidden := el.Attr("hidden")
	assert.False(t, hidden)
	role, _ := el.Attr("role")
	assert.Equal(t, "alert", role)

	success, ok := doc.ElementByID("notification-success")
	require.True(t, ok)
	live, _ := success.Attr("aria-live")
	assert.Equal(t, "polite", live)

	clock.Advance(notifications.DefaultTTL)
	assert.Empty(t, el.Text())
	_, hidden = el.Attr("hidden")
	assert.True(t, hidden)
}

func TestBroadcastRegion(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[notifications.Event](8)
	defer b.Close()

	sub := b.Subscribe(context.Background(), "client-1")
	other := b.Subscribe(context.Background(), "client-2")

	clock := newFakeClock()
	n := newNotifier(notifications.NewBroadcastRegion(b, "client-1"), clock)
	defer n.Dispose()

	_, err := n.Notify(notifications.TypeSuccess, "thanks")
	require.NoError(t, err)
	clock.Advance(notifications.DefaultTTL)

	first := <-sub.Receive()
	assert.Equal(t, notifications.TypeSuccess, first.Kind)
	assert.Equal(t, "thanks", first.Message.Text)
	assert.False(t, first.Cleared)

	second := <-sub.Receive()
	assert.True(t, second.Cleared)
	assert.Equal(t, notifications.TypeSuccess, second.Kind)

	select {
	case ev := <-other.Receive():
		t.Fatalf("other client received %+v", ev)
	default:
	}
}

func TestRegionElement(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := notifications.RegionElement(notifications.TypeInfo, notifications.Message{
		ID: "m1", Type: notifications.TypeInfo, Text: "<b>hi</b>",
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `id="notification-info"`)
	assert.Contains(t, out, `role="status"`)
	assert.Contains(t, out, "&lt;b&gt;hi&lt;/b&gt;")
	assert.NotContains(t, out, "hidden")
}
