package reminders

import (
	"strings"
	"time"

	"github.com/julianstephens/fitlife/internal/models"
)

// FilterByTitle keeps reminders whose title contains query, ignoring case.
// An empty query keeps everything.
func FilterByTitle(items []models.Reminder, query string) []models.Reminder {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Reminder, 0, len(items))
	for _, r := range items {
		if q == "" || strings.Contains(strings.ToLower(r.Title), q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByTab keeps the reminders that belong on tab at now.
func FilterByTab(items []models.Reminder, tab models.Tab, now time.Time) []models.Reminder {
	if tab == models.TabAll || tab == "" {
		return items
	}
	out := make([]models.Reminder, 0, len(items))
	for _, r := range items {
		switch tab {
		case models.TabToday:
			if r.IsToday(now) {
				out = append(out, r)
			}
		case models.TabScheduled:
			if r.IsScheduled(now) {
				out = append(out, r)
			}
		}
	}
	return out
}

// Visible returns the reminders shown for tab and search query, in list order.
func (s *Store) Visible(tab models.Tab, query string, now time.Time) []models.Reminder {
	return FilterByTab(FilterByTitle(s.All(), query), tab, now)
}
