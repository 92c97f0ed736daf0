package commands_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// memoryStore is an order store with a real queue lock. Writes are buffered
// per unit of work and applied on commit, so concurrent handlers behave as
// they do against PostgreSQL with the advisory lock.
type memoryStore struct {
	queueLock sync.Mutex

	mu     sync.Mutex
	orders map[kernel.UUID]order.Snapshot
}

func newMemoryStore() *memoryStore {
	return &memoryStore{orders: make(map[kernel.UUID]order.Snapshot)}
}

func (s *memoryStore) Create() commands.OrderUoW {
	return &memoryUoW{store: s}
}

func (s *memoryStore) seed(orders ...*order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		s.orders[o.ID()] = o.Snapshot()
	}
}

func (s *memoryStore) load(id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	snapshot, ok := s.orders[id]
	s.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snapshot)
}

// active returns the committed active orders sorted by position.
func (s *memoryStore) active() []*order.Order {
	s.mu.Lock()
	snapshots := make([]order.Snapshot, 0, len(s.orders))
	for _, snapshot := range s.orders {
		if snapshot.Status.IsActive() {
			snapshots = append(snapshots, snapshot)
		}
	}
	s.mu.Unlock()

	slices.SortFunc(snapshots, func(a, b order.Snapshot) int {
		return *a.QueuePosition - *b.QueuePosition
	})
	result := make([]*order.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		o, err := order.RestoreOrder(snapshot)
		if err != nil {
			panic(err)
		}
		result = append(result, o)
	}
	return result
}

type memoryUoW struct {
	store   *memoryStore
	begun   bool
	locked  bool
	pending map[kernel.UUID]order.Snapshot
	tracked []*order.Order
}

func (u *memoryUoW) Begin(context.Context) error {
	u.begun = true
	u.pending = make(map[kernel.UUID]order.Snapshot)
	return nil
}

func (u *memoryUoW) LockQueue(context.Context) error {
	u.store.queueLock.Lock()
	u.locked = true
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if !u.begun {
		return errors.New("no active transaction")
	}
	u.store.mu.Lock()
	for id, snapshot := range u.pending {
		u.store.orders[id] = snapshot
	}
	u.store.mu.Unlock()
	u.finish()
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	if !u.begun {
		return errors.New("no active transaction")
	}
	u.finish()
	return nil
}

func (u *memoryUoW) finish() {
	u.begun = false
	u.pending = nil
	if u.locked {
		u.locked = false
		u.store.queueLock.Unlock()
	}
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return memoryRepository{uow: u}
}

func (u *memoryUoW) DomainEvents() []order.StatusChanged {
	var events []order.StatusChanged
	for _, o := range u.tracked {
		events = append(events, o.DomainEvents()...)
	}
	return events
}

func (u *memoryUoW) track(o *order.Order) {
	if !slices.ContainsFunc(u.tracked, o.IsEqual) {
		u.tracked = append(u.tracked, o)
	}
}

type memoryRepository struct {
	uow *memoryUoW
}

func (r memoryRepository) Add(_ context.Context, o *order.Order) error {
	if _, err := r.uow.store.load(o.ID()); err == nil {
		return errors.New("duplicate order")
	}
	r.uow.pending[o.ID()] = o.Snapshot()
	r.uow.track(o)
	return nil
}

func (r memoryRepository) Update(_ context.Context, o *order.Order) error {
	r.uow.pending[o.ID()] = o.Snapshot()
	r.uow.track(o)
	return nil
}

func (r memoryRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if snapshot, ok := r.uow.pending[id]; ok {
		return order.RestoreOrder(snapshot)
	}
	return r.uow.store.load(id)
}

func (r memoryRepository) GetActive(context.Context) ([]*order.Order, error) {
	return r.uow.store.active(), nil
}
