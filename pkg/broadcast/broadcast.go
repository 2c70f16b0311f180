package broadcast

import "sync"

// Subscriber receives messages published to one topic.
type Subscriber[T any] interface {
	// Receive returns the message channel. It is closed when the
	// subscription ends.
	Receive() <-chan T
	// Close ends the subscription. It is idempotent.
	Close() error
}

type subscriber[T any] struct {
	topic  string
	ch     chan T
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](topic string, bufferSize int) *subscriber[T] {
	return &subscriber[T]{topic: topic, ch: make(chan T, bufferSize)}
}

func (s *subscriber[T]) Receive() <-chan T {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

func (s *subscriber[T]) send(msg T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
