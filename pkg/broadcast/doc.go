// Package broadcast fans messages out to in-process subscribers grouped by
// topic.
//
// MemoryBroadcaster never blocks a publisher: every subscriber owns a
// buffered channel and a message that does not fit is dropped for that
// subscriber, which is then unsubscribed. Subscriptions end when the
// context passed to Subscribe is done, when Close is called on the
// subscriber, or when the broadcaster is closed.
//
//	b := broadcast.NewMemoryBroadcaster[Event](16)
//	sub := b.Subscribe(r.Context(), clientID)
//	for msg := range sub.Receive() {
//	    ...
//	}
//
//	b.Broadcast(clientID, Event{...})
package broadcast
