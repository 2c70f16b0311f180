// Package dispatch forwards validated contact submissions to an email relay.
//
// Send never blocks on the relay. It returns an *async.Future that resolves
// to a Result; the caller decides how to surface it (typically by turning
// it into a notification once the future completes). Outcomes:
//
//   - OutcomeConfigError: the site's own target address is malformed.
//     Detected before any work starts; the future is already resolved.
//   - OutcomePreview: the relay has no usable credentials. Nothing is sent.
//     In development the would-be payload is logged; elsewhere only masked
//     metadata is.
//   - OutcomeSent: the relay accepted the message. Result.ResetForm is set.
//   - OutcomeFailed: the relay rejected the message or could not be reached.
//
// Delivery is attempted at most once. There are no retries and no queue;
// the visitor resubmits manually after a failure.
package dispatch
