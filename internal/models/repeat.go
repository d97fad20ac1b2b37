package models

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Repeat is how often a dated reminder comes back after it fires.
type Repeat string

const (
	RepeatNone       Repeat = "none"
	RepeatDaily      Repeat = "daily"
	RepeatWeekdays   Repeat = "weekdays"
	RepeatWeekends   Repeat = "weekends"
	RepeatWeekly     Repeat = "weekly"
	RepeatBiweekly   Repeat = "biweekly"
	RepeatMonthly    Repeat = "monthly"
	RepeatQuarterly  Repeat = "quarterly"
	RepeatSemiannual Repeat = "semiannual"
	RepeatYearly     Repeat = "yearly"
)

// RepeatOptions lists the selectable repeat options in menu order.
var RepeatOptions = []Repeat{
	RepeatNone,
	RepeatDaily,
	RepeatWeekdays,
	RepeatWeekends,
	RepeatWeekly,
	RepeatBiweekly,
	RepeatMonthly,
	RepeatQuarterly,
	RepeatSemiannual,
	RepeatYearly,
}

// Valid reports whether r is a known option. The empty value means none.
func (r Repeat) Valid() bool {
	if r == "" {
		return true
	}
	for _, opt := range RepeatOptions {
		if opt == r {
			return true
		}
	}
	return false
}

func (r Repeat) IsNone() bool {
	return r == "" || r == RepeatNone
}

func (r Repeat) Label() string {
	switch r {
	case "", RepeatNone:
		return "None"
	case RepeatDaily:
		return "Every day"
	case RepeatWeekdays:
		return "Weekdays"
	case RepeatWeekends:
		return "Weekends"
	case RepeatWeekly:
		return "Every week"
	case RepeatBiweekly:
		return "Every 2 weeks"
	case RepeatMonthly:
		return "Every month"
	case RepeatQuarterly:
		return "Every 3 months"
	case RepeatSemiannual:
		return "Every 6 months"
	case RepeatYearly:
		return "Every year"
	default:
		return string(r)
	}
}

func ParseRepeat(s string) (Repeat, error) {
	r := Repeat(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid repeat option: %s", s)
	}
	if r == "" {
		return RepeatNone, nil
	}
	return r, nil
}

// RRule builds the recurrence rule anchored at start. It returns nil for RepeatNone.
func (r Repeat) RRule(start time.Time) (*rrule.RRule, error) {
	opt := rrule.ROption{Dtstart: start, Interval: 1}
	switch r {
	case "", RepeatNone:
		return nil, nil
	case RepeatDaily:
		opt.Freq = rrule.DAILY
	case RepeatWeekdays:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}
	case RepeatWeekends:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rrule.SA, rrule.SU}
	case RepeatWeekly:
		opt.Freq = rrule.WEEKLY
	case RepeatBiweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case RepeatMonthly:
		opt.Freq = rrule.MONTHLY
	case RepeatQuarterly:
		opt.Freq = rrule.MONTHLY
		opt.Interval = 3
	case RepeatSemiannual:
		opt.Freq = rrule.MONTHLY
		opt.Interval = 6
	case RepeatYearly:
		opt.Freq = rrule.YEARLY
	default:
		return nil, fmt.Errorf("invalid repeat option: %s", r)
	}
	return rrule.NewRRule(opt)
}

// Next returns the first occurrence at or after after. For a non-repeating
// reminder that is start itself, or the zero time once start has passed.
func (r Repeat) Next(start, after time.Time) (time.Time, error) {
	if r.IsNone() {
		if start.Before(after) {
			return time.Time{}, nil
		}
		return start, nil
	}
	rule, err := r.RRule(start)
	if err != nil {
		return time.Time{}, err
	}
	return rule.After(after, true), nil
}
