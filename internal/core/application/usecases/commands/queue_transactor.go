package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/queue"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultMaxAttempts bounds how often a conflicting queue transaction runs.
	DefaultMaxAttempts = 3

	retryInitialInterval = 25 * time.Millisecond
	retryMaxInterval     = 250 * time.Millisecond
)

// QueueTx is the view a command gets of the queue inside its transaction.
type QueueTx struct {
	queue  *queue.Queue
	orders ports.OrderRepository
	now    time.Time
	added  []*order.Order
}

// Queue returns the active orders read under the queue lock.
func (tx *QueueTx) Queue() *queue.Queue {
	return tx.queue
}

// Now returns the clock reading shared by every change in the transaction.
func (tx *QueueTx) Now() time.Time {
	return tx.now
}

// Order returns the order with the given id. Active orders are returned as the
// instance held by the queue so position changes apply to the snapshot.
func (tx *QueueTx) Order(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if o, ok := tx.queue.Find(id); ok {
		return o, nil
	}
	return tx.orders.Get(ctx, id)
}

// Add registers an order that does not exist in storage yet.
func (tx *QueueTx) Add(o *order.Order) {
	tx.added = append(tx.added, o)
	tx.queue.Touch(o)
}

func (tx *QueueTx) isAdded(o *order.Order) bool {
	for _, added := range tx.added {
		if added.IsEqual(o) {
			return true
		}
	}
	return false
}

// QueueTransactor runs queue mutations one at a time.
//
// Each attempt opens a transaction, takes the queue lock, reads the active
// orders and hands them to the command. Every order the command touched is
// written back, positions are checked once more and the transaction commits.
// Status changes are published only after a successful commit.
//
// Lock timeouts, serialization failures and deadlocks surface as
// errs.ConcurrentModificationError and are retried with exponential backoff up
// to maxAttempts runs in total. Any other error rolls the attempt back and is
// returned unchanged.
type QueueTransactor struct {
	uowFactory  OrderUoWFactory
	publisher   ports.EventPublisher
	clock       ports.Clock
	maxAttempts int
	logger      *slog.Logger
}

func NewQueueTransactor(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
	maxAttempts int,
	logger *slog.Logger,
) QueueTransactor {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return QueueTransactor{
		uowFactory:  uowFactory,
		publisher:   publisher,
		clock:       clock,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "queue_transactor"),
	}
}

// Run executes fn against a validated snapshot of the queue. A snapshot that
// breaks contiguity fails with errs.InconsistentQueueStateError before fn runs.
func (t QueueTransactor) Run(ctx context.Context, operation string, fn func(ctx context.Context, tx *QueueTx) error) error {
	return t.retry(ctx, operation, func() error {
		return t.attempt(ctx, queue.New, fn)
	})
}

// Repair executes fn against the queue as stored, without validating it first.
// The result is still validated before commit.
func (t QueueTransactor) Repair(ctx context.Context, operation string, fn func(ctx context.Context, tx *QueueTx) error) error {
	restore := func(active []*order.Order) (*queue.Queue, error) {
		return queue.Restore(active), nil
	}
	return t.retry(ctx, operation, func() error {
		return t.attempt(ctx, restore, fn)
	})
}

func (t QueueTransactor) retry(ctx context.Context, operation string, run func() error) error {
	attempts := 0
	op := func() error {
		attempts++
		err := run()
		switch {
		case err == nil:
			return nil
		case errors.Is(err, errs.ErrConcurrentModification):
			t.logger.WarnContext(ctx, "Queue transaction conflicted",
				"operation", operation, "attempt", attempts, "error", err)
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	policy.MaxInterval = retryMaxInterval

	//nolint:gosec // maxAttempts is at least 1
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(t.maxAttempts-1)), ctx))
	if err != nil && errors.Is(err, errs.ErrConcurrentModification) {
		return errs.NewConcurrentModificationErrorWithCause(attempts, err)
	}
	return err
}

func (t QueueTransactor) attempt(
	ctx context.Context,
	load func([]*order.Order) (*queue.Queue, error),
	fn func(ctx context.Context, tx *QueueTx) error,
) error {
	uow := t.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.LockQueue(ctx); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	active, err := orderRepo.GetActive(ctx)
	if err != nil {
		return err
	}

	q, err := load(active)
	if err != nil {
		return err
	}

	tx := &QueueTx{queue: q, orders: orderRepo, now: t.clock.Now()}
	if err = fn(ctx, tx); err != nil {
		return err
	}

	touched := q.Touched()
	for _, o := range touched {
		if tx.isAdded(o) {
			err = orderRepo.Add(ctx, o)
		} else {
			err = orderRepo.Update(ctx, o)
		}
		if err != nil {
			return err
		}
	}

	if err = q.Validate(); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if events := uow.DomainEvents(); len(events) > 0 {
		t.publisher.Publish(ctx, events...)
	}
	for _, o := range touched {
		o.ClearDomainEvents()
	}
	return nil
}
