package notifier

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/storage"
)

// Scheduler is the local notification side channel.
type Scheduler interface {
	Schedule(ctx context.Context, n models.Notification) error
	Cancel(ctx context.Context, id string) error
	Pending(ctx context.Context) ([]models.Notification, error)
}

// StoreScheduler keeps scheduled notifications in storage, where the daemon
// picks them up for delivery.
type StoreScheduler struct {
	store storage.Provider
}

func NewStoreScheduler(store storage.Provider) *StoreScheduler {
	return &StoreScheduler{store: store}
}

func (s *StoreScheduler) Schedule(ctx context.Context, n models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.SaveNotification(n)
}

// Cancel removes the entry for id. Cancelling an id that was never scheduled succeeds.
func (s *StoreScheduler) Cancel(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.store.DeleteNotification(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

func (s *StoreScheduler) Pending(ctx context.Context) ([]models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetNotifications()
}

// MemoryScheduler holds notifications in process. It backs sessions that run
// without storage.
type MemoryScheduler struct {
	mu    sync.Mutex
	items map[string]models.Notification
}

func NewMemoryScheduler() *MemoryScheduler {
	return &MemoryScheduler{items: make(map[string]models.Notification)}
}

func (m *MemoryScheduler) Schedule(ctx context.Context, n models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[n.ID] = n
	return nil
}

func (m *MemoryScheduler) Cancel(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *MemoryScheduler) Pending(ctx context.Context) ([]models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Notification, 0, len(m.items))
	for _, n := range m.items {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
