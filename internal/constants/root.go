package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog. Action runs
// when the user confirms, Cancel when they decline or abort.
type ConfirmationMsg struct {
	Title   string
	Message string
	Action  func() tea.Cmd
	Cancel  func()
}

const (
	AppName            = "fitlife"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/fitlife"
	DefaultConfigFile  = "~/.config/fitlife/config.yaml"
	DefaultDatabase    = "~/.config/fitlife/fitlife.db"
	DefaultUserID      = "local"
	EnvPrefix          = "FITLIFE_"
	EnvDBConnection    = "FITLIFE_DB_CONNECTION"
	Version            = "v0.1.0"

	// DateFormat is the normalized date format reminders are stored with (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the normalized time format reminders are stored with (HH:MM)
	TimeFormat = "15:04"

	// DisplayDateFormat is the day/month/year order reminders are rendered and typed in
	DisplayDateFormat = "02/01/2006"

	// DisplayDateInputFormat also accepts unpadded day and month (5/1/2026)
	DisplayDateInputFormat = "2/1/2006"

	// Swipe thresholds, as a fraction of the row width
	DefaultSwipeRevealFraction = 0.2
	DefaultSwipeDeleteFraction = 0.65
	SwipeStep                  = 0.25

	// Notify constants
	NotifyBackendTray      = "tray"
	NotifyBackendLog       = "log"
	NotifierLockfileName   = "fitlife-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.fitlife"
	NotifyTaskTimeout      = 5 * time.Second
	DefaultDaemonSchedule  = "@every 1m"
	DefaultMetricsAddr     = "127.0.0.1:9477"

	// ClockRefresh is how often the TUI header clock is redrawn
	ClockRefresh = time.Second
)

// Session States
const (
	StateList SessionState = iota
	StateSearch
	StateAddReminder
	StateEditReminder
	StateConfirmation
	StateAlert
)
