package reminders

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/fitlife/internal/models"
)

var (
	// ErrBlankTitle is returned when a reminder with an empty title is added or saved.
	ErrBlankTitle = models.ErrBlankTitle
	// ErrNotFound is returned when no reminder has the requested id.
	ErrNotFound = errors.New("reminder not found")
	// ErrIndexOutOfRange is returned by positional operations outside the list.
	ErrIndexOutOfRange = errors.New("reminder index out of range")
	// ErrDuplicateID is returned when adding a reminder whose id is already stored.
	ErrDuplicateID = errors.New("reminder id already exists")
)

// Store is the ordered list of reminders for the current session.
// Order is insertion order; edits replace in place.
type Store struct {
	mu    sync.RWMutex
	items []models.Reminder
	now   func() time.Time
}

func NewStore(items ...models.Reminder) *Store {
	s := &Store{now: time.Now}
	s.items = append(s.items, items...)
	return s
}

// Add validates r and appends it to the end of the list. A blank title leaves the
// store untouched. An empty id is filled with a new uuid.
func (s *Store) Add(r models.Reminder) (models.Reminder, error) {
	if err := r.Validate(); err != nil {
		return models.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.New().String()
	} else if s.indexOf(r.ID) >= 0 {
		return models.Reminder{}, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}
	now := s.now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	if r.Repeat == "" {
		r.Repeat = models.RepeatNone
	}

	s.items = append(s.items, r)
	return r, nil
}

// Update replaces the reminder with the given id, keeping its position, id and
// creation time.
func (s *Store) Update(id string, r models.Reminder) (models.Reminder, error) {
	if err := r.Validate(); err != nil {
		return models.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.replace(i, r), nil
}

// UpdateAt replaces the reminder at index.
func (s *Store) UpdateAt(index int, r models.Reminder) (models.Reminder, error) {
	if err := r.Validate(); err != nil {
		return models.Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return models.Reminder{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.replace(index, r), nil
}

func (s *Store) replace(i int, r models.Reminder) models.Reminder {
	prev := s.items[i]
	r.ID = prev.ID
	r.UserID = prev.UserID
	r.CreatedAt = prev.CreatedAt
	r.UpdatedAt = s.now()
	if r.Repeat == "" {
		r.Repeat = models.RepeatNone
	}
	s.items[i] = r
	return r
}

// Remove deletes the reminder with the given id and returns it.
func (s *Store) Remove(id string) (models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.removeAt(i), nil
}

// RemoveAt deletes exactly one reminder at index; later reminders shift down by one.
func (s *Store) RemoveAt(index int) (models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return models.Reminder{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.removeAt(index), nil
}

func (s *Store) removeAt(i int) models.Reminder {
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return removed
}

// put restores r at its current position without touching timestamps.
func (s *Store) put(r models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(r.ID); i >= 0 {
		s.items[i] = r
	}
}

// Insert puts r back at index, clamped to the list bounds. Used to undo a removal.
func (s *Store) Insert(index int, r models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items, models.Reminder{})
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = r
}

func (s *Store) Get(id string) (models.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Reminder{}, false
	}
	return s.items[i], true
}

func (s *Store) At(index int) (models.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.items) {
		return models.Reminder{}, false
	}
	return s.items[index], true
}

// IndexOf returns the position of id, or -1.
func (s *Store) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id)
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// All returns a copy of the list in order.
func (s *Store) All() []models.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Reminder, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps the whole list, e.g. after loading from storage.
func (s *Store) Replace(items []models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]models.Reminder, len(items))
	copy(s.items, items)
}

// Apply hands a form submission to the store: adds append, edits replace.
// Edits are resolved by id when the payload carries one, else by index.
func (s *Store) Apply(sub Submission) (models.Reminder, error) {
	switch sub.Mode {
	case ModeAdd:
		return s.Add(sub.Reminder)
	case ModeEdit:
		if sub.Reminder.ID != "" {
			return s.Update(sub.Reminder.ID, sub.Reminder)
		}
		return s.UpdateAt(sub.Index, sub.Reminder)
	default:
		return models.Reminder{}, fmt.Errorf("unknown submission mode: %d", sub.Mode)
	}
}
