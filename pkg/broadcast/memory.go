package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster is a topic based in-process broadcaster.
// All methods are safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	topics     map[string]map[*subscriber[T]]struct{}
	bufferSize int
	closed     bool
	done       chan struct{}
	mu         sync.RWMutex
	cleanupWg  sync.WaitGroup
}

// NewMemoryBroadcaster creates a broadcaster whose subscribers buffer up to
// bufferSize messages (at least 1).
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		topics:     make(map[string]map[*subscriber[T]]struct{}),
		bufferSize: max(bufferSize, 1),
		done:       make(chan struct{}),
	}
}

// Subscribe registers a subscriber for topic until ctx is done. A closed
// broadcaster returns an already closed subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context, topic string) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](topic, b.bufferSize)
	if b.closed {
		_ = sub.Close()
		return sub
	}

	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[*subscriber[T]]struct{})
		b.topics[topic] = subs
	}
	subs[sub] = struct{}{}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			select {
			case <-ctx.Done():
				b.unsubscribe(sub)
			case <-b.done:
			}
		}()
	}

	return sub
}

// Broadcast delivers msg to every subscriber of topic and returns how many
// received it. Subscribers with a full buffer miss the message and are
// dropped.
func (b *MemoryBroadcaster[T]) Broadcast(topic string, msg T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return 0
	}

	delivered := 0
	for sub := range b.topics[topic] {
		if sub.send(msg) {
			delivered++
			continue
		}
		go b.unsubscribe(sub)
	}
	return delivered
}

// Subscribers returns the number of live subscribers of topic.
func (b *MemoryBroadcaster[T]) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.topics[topic])
}

// Close closes every subscriber. It is safe to call more than once.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)

	for _, subs := range b.topics {
		for sub := range subs {
			_ = sub.Close()
		}
	}
	clear(b.topics)
	b.mu.Unlock()

	b.cleanupWg.Wait()
	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.topics[sub.topic]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(b.topics, sub.topic)
		}
	}
	_ = sub.Close()
}
