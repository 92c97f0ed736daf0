// Package queue models the fulfillment line as a snapshot of its active
// orders, read while the queue lock is held.
//
// A Queue tracks every order it changes so the caller can persist exactly
// those orders in the same transaction. Position arithmetic lives in the
// services package; this package only offers the primitives (join, detach,
// range shifts) and the contiguity check.
package queue
