// Package services provides the domain services of the fulfillment queue. They
// operate on a queue.Queue snapshot taken under the queue lock and never talk
// to storage themselves.
//
// The package includes:
//   - PositionAllocator: next tail position for Standard entrants
//   - DeliveryTimeEstimator: delivery estimate per class and stage
//   - QueueCompactor: closes the gap an order leaves behind
//   - ExpressPromoter: keeps Express orders ahead of Standard orders
//   - ManualRepositioner: operator override of an order's position
//   - OrderStateMachine: status transitions and their queue side effects
//
// OrderStateMachine is the only caller of the other services from the
// application layer, so every position change goes through one place.
package services
