// Package errs holds the typed errors shared by the domain, the use cases and
// the adapters of the fulfillment service.
//
// Kinds:
//   - ValueIsRequiredError: a mandatory value is blank or absent
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a value lies outside its bounds, e.g. a queue position
//   - ObjectNotFoundError: no row for the given id
//   - InvalidTransitionError: the order status change is not permitted
//   - ConcurrentModificationError: a queue transaction lost a race and retries ran out
//   - InconsistentQueueStateError: the queue failed its contiguity or ordering check
//
// Every kind has a sentinel (ErrValueIsRequired, ...), a struct carrying the
// details and constructors with and without a cause. Unwrap returns the
// sentinel, so callers classify with errors.Is; the cause is kept for the
// message only.
package errs
