package notifications

import (
	"github.com/dmitrymomot/portfolio/pkg/broadcast"
	"github.com/dmitrymomot/portfolio/pkg/dom"
)

// Region displays notifications of each type.
type Region interface {
	Show(msg Message)
	Clear(kind Type)
}

// RegionID is the element id of the region for kind.
func RegionID(kind Type) string {
	return "notification-" + string(kind)
}

// DocumentRegion renders into #notification-{type} elements. Missing
// elements are ignored.
type DocumentRegion struct {
	doc dom.Document
}

func NewDocumentRegion(doc dom.Document) *DocumentRegion {
	return &DocumentRegion{doc: doc}
}

func (r *DocumentRegion) Show(msg Message) {
	el, ok := r.doc.ElementByID(RegionID(msg.Type))
	if !ok {
		return
	}
	el.SetText(msg.Text)
	el.SetAttr("data-message-id", msg.ID)
	el.RemoveAttr("hidden")
}

func (r *DocumentRegion) Clear(kind Type) {
	el, ok := r.doc.ElementByID(RegionID(kind))
	if !ok {
		return
	}
	el.SetText("")
	el.RemoveAttr("data-message-id")
	el.SetAttr("hidden", "")
}

// Event is published by BroadcastRegion. Cleared events carry only Kind.
type Event struct {
	Kind    Type
	Message Message
	Cleared bool
}

// BroadcastRegion publishes region changes to one broadcast topic.
type BroadcastRegion struct {
	b     *broadcast.MemoryBroadcaster[Event]
	topic string
}

func NewBroadcastRegion(b *broadcast.MemoryBroadcaster[Event], topic string) *BroadcastRegion {
	return &BroadcastRegion{b: b, topic: topic}
}

func (r *BroadcastRegion) Show(msg Message) {
	r.b.Broadcast(r.topic, Event{Kind: msg.Type, Message: msg})
}

func (r *BroadcastRegion) Clear(kind Type) {
	r.b.Broadcast(r.topic, Event{Kind: kind, Cleared: true})
}
