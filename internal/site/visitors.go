package site

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/portfolio/pkg/broadcast"
	"github.com/dmitrymomot/portfolio/pkg/notifications"
)

type visitor struct {
	notifier *notifications.Notifier
	busy     atomic.Bool
	lastSeen atomic.Int64
}

// Visitors holds one Notifier per visitor id. Each notifier publishes to the
// broadcast topic named after the visitor, which the notification stream of
// that visitor subscribes to.
type Visitors struct {
	mu     sync.Mutex
	items  map[string]*visitor
	events *broadcast.MemoryBroadcaster[notifications.Event]
	opts   []notifications.Option
	now    func() time.Time

	idleAfter time.Duration
	stop      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

type VisitorsOption func(*Visitors)

// WithNotifierOptions configures every notifier the registry creates.
func WithNotifierOptions(opts ...notifications.Option) VisitorsOption {
	return func(v *Visitors) {
		v.opts = append(v.opts, opts...)
	}
}

// WithIdleAfter sets how long a visitor without an open stream is kept.
// Zero disables the background sweep.
func WithIdleAfter(d time.Duration) VisitorsOption {
	return func(v *Visitors) {
		v.idleAfter = d
	}
}

func WithVisitorsNow(now func() time.Time) VisitorsOption {
	return func(v *Visitors) {
		if now != nil {
			v.now = now
		}
	}
}

func NewVisitors(events *broadcast.MemoryBroadcaster[notifications.Event], opts ...VisitorsOption) *Visitors {
	v := &Visitors{
		items:     make(map[string]*visitor),
		events:    events,
		now:       time.Now,
		idleAfter: 30 * time.Minute,
		stop:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.idleAfter > 0 {
		go v.sweepLoop(v.idleAfter / 2)
	} else {
		close(v.stopped)
	}
	return v
}

func (v *Visitors) get(id string) *visitor {
	v.mu.Lock()
	defer v.mu.Unlock()

	vis, ok := v.items[id]
	if !ok {
		region := notifications.NewBroadcastRegion(v.events, id)
		vis = &visitor{notifier: notifications.NewNotifier(region, v.opts...)}
		v.items[id] = vis
	}
	vis.lastSeen.Store(v.now().UnixNano())
	return vis
}

// Notifier returns the notifier of visitor id, creating it on first use.
func (v *Visitors) Notifier(id string) *notifications.Notifier {
	return v.get(id).notifier
}

// TryAcquire marks the visitor as having a submission in flight. It
// reports false when one already is.
func (v *Visitors) TryAcquire(id string) bool {
	return v.get(id).busy.CompareAndSwap(false, true)
}

func (v *Visitors) Release(id string) {
	v.get(id).busy.Store(false)
}

func (v *Visitors) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items)
}

// Sweep drops visitors idle for longer than the configured idle time that
// have neither an open stream nor a submission in flight.
func (v *Visitors) Sweep() int {
	cutoff := v.now().Add(-v.idleAfter).UnixNano()

	v.mu.Lock()
	var stale []*visitor
	for id, vis := range v.items {
		if vis.lastSeen.Load() > cutoff || vis.busy.Load() || v.events.Subscribers(id) > 0 {
			continue
		}
		stale = append(stale, vis)
		delete(v.items, id)
	}
	v.mu.Unlock()

	for _, vis := range stale {
		vis.notifier.Dispose()
	}
	return len(stale)
}

func (v *Visitors) sweepLoop(interval time.Duration) {
	defer close(v.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-v.stop:
			return
		case <-ticker.C:
			v.Sweep()
		}
	}
}

// Close stops the sweep and disposes every notifier.
func (v *Visitors) Close() {
	v.closeOnce.Do(func() {
		close(v.stop)
		<-v.stopped

		v.mu.Lock()
		items := v.items
		v.items = make(map[string]*visitor)
		v.mu.Unlock()

		for _, vis := range items {
			vis.notifier.Dispose()
		}
	})
}
