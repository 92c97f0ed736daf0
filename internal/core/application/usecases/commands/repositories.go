// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command that touches the queue runs through QueueTransactor: one
// transaction, the queue lock, a fresh snapshot, persistence of every touched
// order, then event publication after commit.
package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// QueueLocker serializes queue mutations for the rest of the transaction.
	QueueLocker interface {
		LockQueue(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EventSource exposes the status changes of aggregates written in a transaction.
	EventSource interface {
		DomainEvents() []order.StatusChanged
	}

	// OrderUoW manages a queue transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.LockQueue(ctx)
	//   active, err := uow.OrderRepository().GetActive(ctx)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	//   publisher.Publish(ctx, uow.DomainEvents()...)
	OrderUoW interface {
		TxManager
		QueueLocker
		OrderRepoFactory
		EventSource
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
