// Package order provides the Order aggregate of the fulfillment queue.
//
// The package includes:
//   - Order: the aggregate root carrying status, delivery class, queue position and estimate
//   - Status: the lifecycle state machine values and their allowed transitions
//   - DeliveryType: the Standard and Express delivery classes
//   - StatusChanged: the domain event recorded on every real status change
//
// Key business rules:
//   - An order holds a queue position if and only if its status is active
//     (Queued, InProgress or Delayed)
//   - Delivered and Cancelled are final; every request against them is rejected
//   - Status changes are only made through the transition methods, which
//     record a StatusChanged event
//
// Orders never decide their own position: the queue services in the
// services package compute positions and apply them through Enqueue and MoveTo.
package order
