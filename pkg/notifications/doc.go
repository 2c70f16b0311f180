// Package notifications shows short-lived messages to the visitor.
//
// A Notifier owns one slot per message Type (error, success, info). Notify
// replaces the slot's message and schedules it to clear after a fixed
// five-second lifetime. Notifying the same type again cancels the pending
// expiry and starts a new one, so a message is never cleared early by a
// timer belonging to its predecessor. Types are independent: an error
// expiring never touches a success message.
//
// Where a message is shown is decided by a Region:
//
//   - DocumentRegion writes into #notification-{type} elements of a
//     dom.Document.
//   - BroadcastRegion publishes Events to a broadcast topic, from which the
//     site streams patches to the browser.
//
// Time is read through a Clock so tests can advance it manually.
package notifications
