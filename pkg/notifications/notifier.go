package notifications

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/portfolio/pkg/logger"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 5 * time.Second

type slot struct {
	gen   uint64
	timer Timer
	msg   Message
}

// Notifier shows one message per Type and clears it after its TTL.
// It is safe for concurrent use. Region calls are made while the notifier
// lock is held, so regions observe Show and Clear in order.
type Notifier struct {
	mu       sync.Mutex
	region   Region
	clock    Clock
	ttl      time.Duration
	newID    func() string
	slots    map[Type]*slot
	disposed bool
	logger   *slog.Logger
}

type Option func(*Notifier)

func WithClock(c Clock) Option {
	return func(n *Notifier) {
		if c != nil {
			n.clock = c
		}
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.ttl = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(n *Notifier) {
		if fn != nil {
			n.newID = fn
		}
	}
}

func NewNotifier(region Region, opts ...Option) *Notifier {
	n := &Notifier{
		region: region,
		clock:  RealClock(),
		ttl:    DefaultTTL,
		newID:  uuid.NewString,
		slots:  make(map[Type]*slot, len(Types)),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	for _, t := range Types {
		n.slots[t] = &slot{}
	}
	return n
}

// Notify displays text in the region of kind, replacing and rescheduling
// any message already shown there.
func (n *Notifier) Notify(kind Type, text string) (Message, error) {
	if !kind.Valid() {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.disposed {
		return Message{}, ErrDisposed
	}

	s := n.slots[kind]
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen

	now := n.clock.Now()
	s.msg = Message{
		ID:        n.newID(),
		Type:      kind,
		Text:      text,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl),
	}
	s.timer = n.clock.AfterFunc(n.ttl, func() { n.expire(kind, gen) })

	if n.region != nil {
		n.region.Show(s.msg)
	}
	n.logger.Debug("notification shown",
		logger.Component("notifications"),
		logger.NotificationKind(kind),
	)
	return s.msg, nil
}

// expire clears kind unless a newer message replaced the one that
// scheduled this call.
func (n *Notifier) expire(kind Type, gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := n.slots[kind]
	if n.disposed || s.gen != gen {
		return
	}
	s.timer = nil
	s.msg = Message{}
	if n.region != nil {
		n.region.Clear(kind)
	}
}

// Current returns the message displayed for kind, if any.
func (n *Notifier) Current(kind Type) (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	s, ok := n.slots[kind]
	if !ok || s.msg.IsZero() {
		return Message{}, false
	}
	return s.msg, true
}

// Active returns all displayed messages in Types order.
func (n *Notifier) Active() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []Message
	for _, t := range Types {
		if m := n.slots[t].msg; !m.IsZero() {
			out = append(out, m)
		}
	}
	return out
}

// Dispose stops all pending timers. Later Notify calls fail with
// ErrDisposed. Messages on display are left as they are.
func (n *Notifier) Dispose() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.disposed {
		return
	}
	n.disposed = true
	for _, s := range n.slots {
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
	}
}
