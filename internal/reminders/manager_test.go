package reminders

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/notifier"
	"github.com/julianstephens/fitlife/internal/storage"
	"github.com/julianstephens/fitlife/internal/storage/sqlite"
)

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

type callLog struct {
	*notifier.MemoryScheduler
	mu         sync.Mutex
	calls      []string
	failCancel bool
	onPending  func()
}

func (c *callLog) Schedule(ctx context.Context, n models.Notification) error {
	c.mu.Lock()
	c.calls = append(c.calls, "schedule:"+n.Title)
	c.mu.Unlock()
	return c.MemoryScheduler.Schedule(ctx, n)
}

func (c *callLog) Cancel(ctx context.Context, id string) error {
	c.mu.Lock()
	c.calls = append(c.calls, "cancel")
	fail := c.failCancel
	c.mu.Unlock()
	if fail {
		return errors.New("cancel refused")
	}
	return c.MemoryScheduler.Cancel(ctx, id)
}

func (c *callLog) Pending(ctx context.Context) ([]models.Notification, error) {
	if c.onPending != nil {
		c.onPending()
	}
	return c.MemoryScheduler.Pending(ctx)
}

func (c *callLog) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type failingProvider struct {
	storage.Provider
	failWrites bool
}

func (f *failingProvider) AddReminder(r models.Reminder) error {
	if f.failWrites {
		return errors.New("connection reset")
	}
	return f.Provider.AddReminder(r)
}

func (f *failingProvider) UpdateReminder(r models.Reminder) error {
	if f.failWrites {
		return errors.New("connection reset")
	}
	return f.Provider.UpdateReminder(r)
}

func (f *failingProvider) DeleteReminder(id string) error {
	if f.failWrites {
		return errors.New("connection reset")
	}
	return f.Provider.DeleteReminder(id)
}

type harness struct {
	mgr      *Manager
	sched    *callLog
	queue    *notifier.Queue
	provider *failingProvider
	now      time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := sqlite.NewStore(filepath.Join(t.TempDir(), "fitlife.db"), "u1")
	if err := db.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sched := &callLog{MemoryScheduler: notifier.NewMemoryScheduler()}
	queue := notifier.NewQueue(sched, nil)
	ctx, cancel := context.WithCancel(context.Background())
	queue.Start(ctx)
	t.Cleanup(cancel)

	h := &harness{sched: sched, queue: queue, provider: &failingProvider{Provider: db}, now: testNow}
	h.mgr = NewManager(NewStore(), Options{
		Provider: h.provider,
		Queue:    queue,
		Location: time.UTC,
		Now:      func() time.Time { return h.now },
	})
	return h
}

func (h *harness) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.queue.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}

func (h *harness) pending(t *testing.T) []models.Notification {
	t.Helper()
	h.flush(t)
	p, err := h.sched.Pending(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestManager_AddSchedulesAndPersists(t *testing.T) {
	h := newHarness(t)

	r, err := h.mgr.Add(models.Reminder{Title: "Run", Date: "2026-10-18", Time: "07:00"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := h.mgr.Add(models.Reminder{Title: "Undated"}); err != nil {
		t.Fatal(err)
	}

	pending := h.pending(t)
	if len(pending) != 1 || pending[0].ID != r.ID {
		t.Fatalf("pending = %+v, want only %s", pending, r.ID)
	}
	want := time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC)
	if !pending[0].TriggerAt.Equal(want) {
		t.Errorf("TriggerAt = %v, want %v", pending[0].TriggerAt, want)
	}

	stored, err := h.provider.GetAllReminders()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 || stored[0].ID != r.ID || stored[0].UserID != "u1" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestManager_AddBlankTitle(t *testing.T) {
	h := newHarness(t)
	if _, err := h.mgr.Add(models.Reminder{Title: " "}); !errors.Is(err, ErrBlankTitle) {
		t.Errorf("Add() error = %v, want ErrBlankTitle", err)
	}
	if h.mgr.Store().Len() != 0 {
		t.Error("store changed on blank title")
	}
	if calls := h.sched.Calls(); len(calls) != 0 {
		t.Errorf("notification side effects on rejected add: %v", calls)
	}
}

func TestManager_EditCancelsThenReschedules(t *testing.T) {
	h := newHarness(t)
	r, err := h.mgr.Add(models.Reminder{Title: "Run", Date: "2026-10-18", Time: "07:00"})
	if err != nil {
		t.Fatal(err)
	}
	h.flush(t)

	edited, err := h.mgr.Edit(r.ID, models.Reminder{Title: "Long run", Date: "2026-10-19", Time: "06:30"})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if edited.ID != r.ID || h.mgr.Store().IndexOf(r.ID) != 0 {
		t.Errorf("edit should keep id and position")
	}

	pending := h.pending(t)
	if len(pending) != 1 || pending[0].Title != "Long run" {
		t.Fatalf("pending = %+v", pending)
	}
	want := []string{"schedule:Run", "cancel", "schedule:Long run"}
	got := h.sched.Calls()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestManager_EditRemovingTimeCancels(t *testing.T) {
	h := newHarness(t)
	r, _ := h.mgr.Add(models.Reminder{Title: "Run", Date: "2026-10-18", Time: "07:00"})

	if _, err := h.mgr.Edit(r.ID, models.Reminder{Title: "Run", Date: "2026-10-18"}); err != nil {
		t.Fatal(err)
	}
	if pending := h.pending(t); len(pending) != 0 {
		t.Errorf("pending = %+v, want none", pending)
	}
}

func TestManager_DeleteCancelFailureNotFatal(t *testing.T) {
	h := newHarness(t)
	a, _ := h.mgr.Add(models.Reminder{Title: "A", Date: "2026-10-18", Time: "07:00"})
	b, _ := h.mgr.Add(models.Reminder{Title: "B"})
	h.flush(t)
	h.sched.mu.Lock()
	h.sched.failCancel = true
	h.sched.mu.Unlock()

	removed, err := h.mgr.DeleteAt(0)
	if err != nil {
		t.Fatalf("DeleteAt() error = %v", err)
	}
	if removed.ID != a.ID {
		t.Errorf("removed %s, want %s", removed.ID, a.ID)
	}
	if h.mgr.Store().Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.mgr.Store().Len())
	}
	if got, _ := h.mgr.Store().At(0); got.ID != b.ID {
		t.Errorf("remaining = %s, want %s", got.ID, b.ID)
	}
	if _, err := h.provider.GetReminder(a.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("deleted reminder still stored: %v", err)
	}
}

func TestManager_PersistenceFailureRollsBack(t *testing.T) {
	h := newHarness(t)
	r, _ := h.mgr.Add(models.Reminder{Title: "Keep"})
	h.provider.failWrites = true

	if _, err := h.mgr.Add(models.Reminder{Title: "Lost"}); err == nil {
		t.Error("Add() should fail when storage fails")
	}
	if h.mgr.Store().Len() != 1 {
		t.Errorf("Len() = %d after failed add, want 1", h.mgr.Store().Len())
	}

	if _, err := h.mgr.Edit(r.ID, models.Reminder{Title: "Changed"}); err == nil {
		t.Error("Edit() should fail when storage fails")
	}
	if got, _ := h.mgr.Store().Get(r.ID); got.Title != "Keep" {
		t.Errorf("title = %q after failed edit, want Keep", got.Title)
	}

	if _, err := h.mgr.Delete(r.ID); err == nil {
		t.Error("Delete() should fail when storage fails")
	}
	if h.mgr.Store().IndexOf(r.ID) != 0 {
		t.Error("reminder not restored after failed delete")
	}
}

func TestManager_IndexErrors(t *testing.T) {
	h := newHarness(t)
	if _, err := h.mgr.DeleteAt(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DeleteAt() error = %v", err)
	}
	if _, err := h.mgr.EditAt(3, models.Reminder{Title: "x"}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("EditAt() error = %v", err)
	}
	if _, err := h.mgr.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestManager_SubmitAndLoad(t *testing.T) {
	h := newHarness(t)
	added, err := h.mgr.Submit(NewAdd(models.Reminder{Title: "Swim"}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.mgr.Submit(NewEdit(models.Reminder{Title: "Swim laps"}, 0)); err != nil {
		t.Fatal(err)
	}

	fresh := NewManager(NewStore(), Options{Provider: h.provider, Location: time.UTC})
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, ok := fresh.Store().Get(added.ID)
	if !ok || got.Title != "Swim laps" {
		t.Errorf("loaded = %+v, %v", got, ok)
	}
}

func TestManager_Reconcile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	keep, _ := h.mgr.Add(models.Reminder{Title: "Keep", Date: "2026-10-18", Time: "07:00"})
	h.flush(t)

	// Drift the side channel: a stale entry and a missing one.
	_ = h.sched.MemoryScheduler.Schedule(ctx, models.Notification{ID: "ghost", Title: "Ghost", TriggerAt: testNow.Add(time.Hour)})
	_ = h.sched.MemoryScheduler.Cancel(ctx, keep.ID)

	tasks, err := h.mgr.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("Reconcile() enqueued %d commands, want 2", len(tasks))
	}

	pending := h.pending(t)
	if len(pending) != 1 || pending[0].ID != keep.ID {
		t.Errorf("pending after reconcile = %+v", pending)
	}
	for _, task := range tasks {
		if task.State() != notifier.TaskDone {
			t.Errorf("task %s %s state = %s", task.Command.Kind, task.Command.ID, task.State())
		}
	}
}

func TestManager_ReconcileKeepsDueNotifications(t *testing.T) {
	tests := []struct {
		name     string
		reminder models.Reminder
	}{
		{"one-shot", models.Reminder{Title: "Stretch", Date: "2026-10-17", Time: "09:05"}},
		{"daily", models.Reminder{Title: "Stretch", Date: "2026-10-17", Time: "09:05", Repeat: models.RepeatDaily}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			ctx := context.Background()

			r, err := h.mgr.Add(tt.reminder)
			if err != nil {
				t.Fatal(err)
			}
			want := time.Date(2026, 10, 17, 9, 5, 0, 0, time.UTC)
			if p := h.pending(t); len(p) != 1 || !p[0].TriggerAt.Equal(want) {
				t.Fatalf("pending after add = %+v", p)
			}

			// Delivery has not run yet when the clock passes the trigger.
			h.now = testNow.Add(6 * time.Minute)
			tasks, err := h.mgr.Reconcile(ctx)
			if err != nil {
				t.Fatalf("Reconcile() error = %v", err)
			}
			if len(tasks) != 0 {
				t.Errorf("Reconcile() enqueued %d commands, want 0", len(tasks))
			}
			p := h.pending(t)
			if len(p) != 1 || p[0].ID != r.ID || !p[0].TriggerAt.Equal(want) {
				t.Fatalf("pending after reconcile = %+v", p)
			}
			if !p[0].IsDue(h.now) {
				t.Error("notification is no longer due")
			}
		})
	}
}

func TestManager_ReconcileDropsDueEntryOfDeletedReminder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r, _ := h.mgr.Add(models.Reminder{Title: "Stretch", Date: "2026-10-17", Time: "09:05"})
	h.flush(t)
	h.mgr.store.Replace(nil)

	h.now = testNow.Add(6 * time.Minute)
	tasks, err := h.mgr.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Command.Kind != notifier.KindCancel || tasks[0].Command.ID != r.ID {
		t.Errorf("Reconcile() tasks = %+v, want one cancel", tasks)
	}
	if p := h.pending(t); len(p) != 0 {
		t.Errorf("pending after reconcile = %+v", p)
	}
}

func TestManager_ReconcileSkipsReminderDeletedMidway(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	r, _ := h.mgr.Add(models.Reminder{Title: "Run", Date: "2026-10-18", Time: "07:00"})
	h.flush(t)
	_ = h.sched.MemoryScheduler.Cancel(ctx, r.ID)

	// The delete lands after the reminder snapshot was taken.
	h.sched.onPending = func() {
		h.sched.onPending = nil
		if _, err := h.mgr.Delete(r.ID); err != nil {
			t.Errorf("Delete() error = %v", err)
		}
	}

	tasks, err := h.mgr.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	for _, task := range tasks {
		if task.Command.Kind == notifier.KindSchedule {
			t.Errorf("Reconcile() scheduled %s after its reminder was deleted", task.Command.ID)
		}
	}
	if p := h.pending(t); len(p) != 0 {
		t.Errorf("pending after reconcile = %+v", p)
	}
}

func TestManager_WithoutCollaborators(t *testing.T) {
	mgr := NewManager(nil, Options{Location: time.UTC, Now: func() time.Time { return testNow }})
	r, err := mgr.Add(models.Reminder{Title: "Solo", Date: "2026-10-17"})
	if err != nil {
		t.Fatal(err)
	}
	if got := mgr.Visible(models.TabToday, ""); len(got) != 1 || got[0].ID != r.ID {
		t.Errorf("Visible(today) = %+v", got)
	}
	if tasks, err := mgr.Reconcile(context.Background()); err != nil || tasks != nil {
		t.Errorf("Reconcile() = %v, %v", tasks, err)
	}
	if _, err := mgr.Delete(r.ID); err != nil {
		t.Fatal(err)
	}
}
