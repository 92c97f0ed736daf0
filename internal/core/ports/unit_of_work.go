package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// LockQueue takes the queue lock for the rest of the transaction.
	// It blocks until the lock is free or the lock timeout expires, in which
	// case errs.ConcurrentModificationError is returned.
	LockQueue(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderRepository() OrderRepository

	// DomainEvents returns the events recorded by every aggregate written
	// through this unit of work, in write order.
	DomainEvents() []order.StatusChanged
}
