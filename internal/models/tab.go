package models

import "fmt"

// Tab selects which reminders the list shows.
type Tab string

const (
	TabToday     Tab = "today"
	TabScheduled Tab = "scheduled"
	TabAll       Tab = "all"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabToday, TabScheduled, TabAll}

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabToday, TabScheduled, TabAll:
		return Tab(s), nil
	case "":
		return TabAll, nil
	}
	return "", fmt.Errorf("invalid tab: %s (must be today, scheduled, or all)", s)
}

func (t Tab) Title() string {
	switch t {
	case TabToday:
		return "Today"
	case TabScheduled:
		return "Scheduled"
	case TabAll:
		return "All"
	default:
		return string(t)
	}
}

// Next returns the tab to the right, wrapping around.
func (t Tab) Next() Tab {
	for i, tab := range Tabs {
		if tab == t {
			return Tabs[(i+1)%len(Tabs)]
		}
	}
	return TabToday
}

// Prev returns the tab to the left, wrapping around.
func (t Tab) Prev() Tab {
	for i, tab := range Tabs {
		if tab == t {
			return Tabs[(i+len(Tabs)-1)%len(Tabs)]
		}
	}
	return TabToday
}
