// Package postgres provides the GORM-based Unit of Work for the fulfillment
// queue. A unit of work is one READ COMMITTED transaction; queue mutations take
// a transaction-scoped advisory lock before reading the active orders, so they
// run one at a time and always see the result of the previous one.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.LockQueue(ctx); err != nil {
//	    return err // errs.ConcurrentModificationError after the lock timeout
//	}
//	active, err := uow.OrderRepository().GetActive(ctx)
//	// ... shift positions, Update every changed order
//
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//	publisher.Publish(ctx, uow.DomainEvents()...)
//
// Each UnitOfWork instance provides an isolated transaction; goroutines must
// not share one.
package postgres

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgerrors"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

const (
	// QueueLockKey identifies the advisory lock that serializes queue mutations.
	QueueLockKey int64 = 0x6675_6c66_696c // "fulfil"

	// DefaultLockTimeout bounds the wait for the queue lock.
	DefaultLockTimeout = 2 * time.Second
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// A non-positive lockTimeout falls back to DefaultLockTimeout.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, 2*time.Second)
func NewGormUnitOfWorkFactory(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &GormUnitOfWorkFactory{db: db, lockTimeout: lockTimeout}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		lockTimeout:       f.lockTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate changes
// for business operations. Domain events of the tracked aggregates are
// available through DomainEvents once the transaction committed.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	lockTimeout       time.Duration
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return pgerrors.Translate(err)
	}

	return nil
}

// LockQueue waits at most lockTimeout for the queue advisory lock. The lock is
// released by Commit or Rollback.
func (uow *GormUnitOfWork) LockQueue(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	// SET does not take bind parameters
	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
	if err := uow.tx.WithContext(ctx).Exec(timeout).Error; err != nil {
		return pgerrors.Translate(err)
	}

	if err := uow.tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", QueueLockKey).Error; err != nil {
		return pgerrors.Translate(err)
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// A duplicate queue position caught by the deferred constraint surfaces here
// as errs.InconsistentQueueStateError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerrors.Translate(err)
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when there is no active transaction, so
// a deferred Rollback after Commit is harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence operations within the unit of work.
// Repository operations will execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// DomainEvents collects the recorded status changes of every tracked order.
func (uow *GormUnitOfWork) DomainEvents() []order.StatusChanged {
	var events []order.StatusChanged
	for _, tracked := range uow.trackedAggregates {
		if o, ok := tracked.Aggregate.(*order.Order); ok {
			events = append(events, o.DomainEvents()...)
		}
	}
	return events
}
