// Package async runs a function in its own goroutine and exposes the result
// as a Future.
//
// A Future completes exactly once. Callers either block on Await or register
// a continuation with Then; continuations run in
// their own goroutine after completion, so the code that started the work
// never blocks on it.
//
//	fut := async.Async(ctx, sub, send)
//	fut.Then(func(outcome Outcome, err error) {
//	    notify(outcome)
//	})
//
// Resolved returns an already completed Future, for results known before
// any work is started.
package async
