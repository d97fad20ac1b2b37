package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/fitlife/internal/constants"
	"github.com/julianstephens/fitlife/internal/utils"
)

// ErrBlankTitle is returned when a reminder title is empty or whitespace only.
var ErrBlankTitle = errors.New("title cannot be empty")

type Reminder struct {
	ID          string    `json:"id" yaml:"id"`
	UserID      string    `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Date        string    `json:"date,omitempty" yaml:"date,omitempty"` // YYYY-MM-DD, empty when no date was set
	Time        string    `json:"time,omitempty" yaml:"time,omitempty"` // HH:MM, empty when no time was set
	Repeat      Repeat    `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrBlankTitle
	}

	if r.Date != "" {
		if _, err := utils.ParseDate(r.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}

	if r.Time != "" {
		if r.Date == "" {
			return fmt.Errorf("a reminder time requires a date")
		}
		if _, err := utils.ParseTime(r.Time); err != nil {
			return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
		}
	}

	if !r.Repeat.Valid() {
		return fmt.Errorf("invalid repeat option: %s", r.Repeat)
	}

	return nil
}

func (r *Reminder) HasDate() bool { return r.Date != "" }

func (r *Reminder) HasTime() bool { return r.Time != "" }

// HasTrigger reports whether the reminder carries both a date and a time,
// which is what a local notification needs.
func (r *Reminder) HasTrigger() bool {
	return r.HasDate() && r.HasTime()
}

// TriggerAt returns the moment the reminder is due in loc.
func (r *Reminder) TriggerAt(loc *time.Location) (time.Time, error) {
	if !r.HasTrigger() {
		return time.Time{}, fmt.Errorf("reminder %s has no date and time", r.ID)
	}
	return utils.CombineDateAndTime(r.Date, r.Time, loc)
}

// IsToday reports whether the reminder is dated on now's calendar day.
func (r *Reminder) IsToday(now time.Time) bool {
	return r.Date != "" && r.Date == now.Format(constants.DateFormat)
}

// IsScheduled reports whether the reminder is dated in the future relative to now.
// A reminder dated today counts only when it also has a time later than now.
func (r *Reminder) IsScheduled(now time.Time) bool {
	if !r.HasDate() {
		return false
	}
	day, err := utils.ParseDateInLocation(r.Date, now.Location())
	if err != nil {
		return false
	}
	today := utils.StartOfDay(now)
	if day.After(today) {
		return true
	}
	if !day.Equal(today) || !r.HasTime() {
		return false
	}
	at, err := r.TriggerAt(now.Location())
	if err != nil {
		return false
	}
	return at.After(now)
}

// DisplayDate renders the date in day/month/year order.
func (r *Reminder) DisplayDate() string {
	return utils.FormatDisplayDate(r.Date)
}

// Summary is the one-line notification body for the reminder.
func (r *Reminder) Summary() string {
	if r.Description != "" {
		return r.Description
	}
	parts := []string{}
	if d := r.DisplayDate(); d != "" {
		parts = append(parts, d)
	}
	if r.Time != "" {
		parts = append(parts, r.Time)
	}
	return strings.Join(parts, " ")
}
