package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/fitlife/internal/logger"
	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/notifier"
	"github.com/julianstephens/fitlife/internal/storage"
)

// Options wires a Manager to its collaborators. Provider and Queue may be nil:
// without a provider the list lives only for the session, without a queue no
// notifications are scheduled.
type Options struct {
	Provider storage.Provider
	Queue    *notifier.Queue
	Location *time.Location
	Now      func() time.Time
}

// Manager applies list operations to the session store, persists them, and
// issues the matching notification commands. Store changes are rolled back
// when persistence fails; notification failures are only logged.
type Manager struct {
	store    *Store
	provider storage.Provider
	queue    *notifier.Queue
	loc      *time.Location
	now      func() time.Time
}

func NewManager(store *Store, opts Options) *Manager {
	if store == nil {
		store = NewStore()
	}
	m := &Manager{
		store:    store,
		provider: opts.Provider,
		queue:    opts.Queue,
		loc:      opts.Location,
		now:      opts.Now,
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.now == nil {
		m.now = func() time.Time { return time.Now().In(m.loc) }
	}
	store.now = m.now
	return m
}

func (m *Manager) Store() *Store { return m.store }

func (m *Manager) Location() *time.Location { return m.loc }

func (m *Manager) Now() time.Time { return m.now() }

// Load replaces the session list with what storage holds.
func (m *Manager) Load() error {
	if m.provider == nil {
		return nil
	}
	items, err := m.provider.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}
	m.store.Replace(items)
	return nil
}

// Visible is the list shown for tab and search query at the current time.
func (m *Manager) Visible(tab models.Tab, query string) []models.Reminder {
	return m.store.Visible(tab, query, m.now())
}

// Add appends r and schedules its notification when it has a date and time.
func (m *Manager) Add(r models.Reminder) (models.Reminder, error) {
	if m.provider != nil && r.UserID == "" {
		r.UserID = m.provider.UserID()
	}
	added, err := m.store.Add(r)
	if err != nil {
		return models.Reminder{}, err
	}

	if m.provider != nil {
		if err := m.provider.AddReminder(added); err != nil {
			_, _ = m.store.Remove(added.ID)
			return models.Reminder{}, fmt.Errorf("failed to save reminder: %w", err)
		}
	}

	m.schedule(added)
	return added, nil
}

// Edit replaces the reminder with id. Its notification is cancelled and then
// scheduled again from the new record.
func (m *Manager) Edit(id string, r models.Reminder) (models.Reminder, error) {
	prev, ok := m.store.Get(id)
	if !ok {
		return models.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	updated, err := m.store.Update(id, r)
	if err != nil {
		return models.Reminder{}, err
	}

	if m.provider != nil {
		if err := m.provider.UpdateReminder(updated); err != nil {
			m.store.put(prev)
			return models.Reminder{}, fmt.Errorf("failed to save reminder: %w", err)
		}
	}

	m.cancel(id)
	m.schedule(updated)
	return updated, nil
}

// EditAt resolves index to a reminder id and edits it.
func (m *Manager) EditAt(index int, r models.Reminder) (models.Reminder, error) {
	cur, ok := m.store.At(index)
	if !ok {
		return models.Reminder{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return m.Edit(cur.ID, r)
}

// Delete cancels the reminder's notification and removes it. A failed cancel
// does not stop the removal.
func (m *Manager) Delete(id string) (models.Reminder, error) {
	index := m.store.IndexOf(id)
	if index < 0 {
		return models.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	m.cancel(id)

	removed, err := m.store.Remove(id)
	if err != nil {
		return models.Reminder{}, err
	}

	if m.provider != nil {
		if err := m.provider.DeleteReminder(id); err != nil {
			m.store.Insert(index, removed)
			m.schedule(removed)
			return models.Reminder{}, fmt.Errorf("failed to delete reminder: %w", err)
		}
	}
	return removed, nil
}

// DeleteAt resolves index to a reminder id and deletes it.
func (m *Manager) DeleteAt(index int) (models.Reminder, error) {
	cur, ok := m.store.At(index)
	if !ok {
		return models.Reminder{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return m.Delete(cur.ID)
}

// Submit applies a form submission.
func (m *Manager) Submit(sub Submission) (models.Reminder, error) {
	switch sub.Mode {
	case ModeAdd:
		return m.Add(sub.Reminder)
	case ModeEdit:
		if sub.Reminder.ID != "" {
			return m.Edit(sub.Reminder.ID, sub.Reminder)
		}
		return m.EditAt(sub.Index, sub.Reminder)
	default:
		return models.Reminder{}, fmt.Errorf("unknown submission mode: %d", sub.Mode)
	}
}

// Reconcile brings the scheduled notifications in line with the list. It
// waits for earlier commands first, then enqueues the difference and returns
// the new tasks without waiting for them.
func (m *Manager) Reconcile(ctx context.Context) ([]*notifier.Task, error) {
	if m.queue == nil {
		return nil, nil
	}
	if err := m.queue.Flush(ctx); err != nil {
		return nil, err
	}

	now := m.now()
	items := m.store.All()
	pending, err := m.queue.Scheduler().Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled notifications: %w", err)
	}

	desired := notifier.Desired(items, m.loc, now, func(r models.Reminder, err error) {
		logger.Warn("Skipping reminder during reconcile", "id", r.ID, "error", err)
	})
	desired = notifier.KeepDue(desired, pending, items, m.loc, now)

	cmds := notifier.Plan(desired, pending)
	tasks := make([]*notifier.Task, 0, len(cmds))
	for _, cmd := range cmds {
		// A delete may have landed since the snapshot.
		if cmd.Kind == notifier.KindSchedule {
			if _, ok := m.store.Get(cmd.ID); !ok {
				continue
			}
		}
		tasks = append(tasks, m.queue.Enqueue(cmd))
	}
	if len(cmds) > 0 {
		logger.Info("Reconciling notifications", "commands", len(cmds))
	}
	return tasks, nil
}

func (m *Manager) schedule(r models.Reminder) *notifier.Task {
	if m.queue == nil {
		return nil
	}
	n, ok, err := notifier.FromReminder(r, m.loc, m.now())
	if err != nil {
		logger.Warn("Failed to build notification", "id", r.ID, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return m.queue.Schedule(n)
}

func (m *Manager) cancel(id string) *notifier.Task {
	if m.queue == nil {
		return nil
	}
	return m.queue.Cancel(id)
}
