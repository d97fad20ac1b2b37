package models

import (
	"fmt"
	"strings"
	"time"
)

// Notification is a local notification scheduled for a reminder. It shares the
// reminder's id so it can be cancelled when the reminder changes or goes away.
type Notification struct {
	ID        string     `json:"id" yaml:"id"`
	UserID    string     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Title     string     `json:"title" yaml:"title"`
	Body      string     `json:"body" yaml:"body"`
	TriggerAt time.Time  `json:"trigger_at" yaml:"trigger_at"`
	Repeat    Repeat     `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Anchor    time.Time  `json:"anchor,omitempty" yaml:"anchor,omitempty"` // first occurrence of a repeating rule
	LastSent  *time.Time `json:"last_sent,omitempty" yaml:"last_sent,omitempty"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}

func (n *Notification) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("notification id cannot be empty")
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("notification title cannot be empty")
	}
	if n.TriggerAt.IsZero() {
		return fmt.Errorf("notification trigger time cannot be empty")
	}
	if !n.Repeat.Valid() {
		return fmt.Errorf("invalid repeat option: %s", n.Repeat)
	}
	return nil
}

// IsDue reports whether the notification should be delivered at now.
func (n *Notification) IsDue(now time.Time) bool {
	return !n.TriggerAt.After(now)
}

// SameSchedule reports whether two notifications would fire identically.
// Repeating entries compare by rule anchor since delivery advances TriggerAt.
func (n *Notification) SameSchedule(other Notification) bool {
	if n.ID != other.ID || n.Title != other.Title || n.Body != other.Body || n.Repeat != other.Repeat {
		return false
	}
	if n.Repeat.IsNone() {
		return n.TriggerAt.Equal(other.TriggerAt)
	}
	return n.Anchor.Equal(other.Anchor)
}

// NextAfter returns the next trigger strictly after t, or the zero time when
// the notification does not repeat.
func (n *Notification) NextAfter(t time.Time) (time.Time, error) {
	if n.Repeat.IsNone() {
		return time.Time{}, nil
	}
	anchor := n.Anchor
	if anchor.IsZero() {
		anchor = n.TriggerAt
	}
	return n.Repeat.Next(anchor, t.Add(time.Second))
}
