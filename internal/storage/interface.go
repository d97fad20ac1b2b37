package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/fitlife/internal/models"
)

// ErrNotFound is returned when a reminder or notification does not exist for the user.
var ErrNotFound = errors.New("not found")

// Provider persists one user's reminders and scheduled notifications.
// Rows are scoped by the user id the provider was created with.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Reminders, returned in list order
	AddReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error

	// Notifications
	SaveNotification(models.Notification) error
	GetNotification(id string) (models.Notification, error)
	GetNotifications() ([]models.Notification, error)
	GetDueNotifications(now time.Time) ([]models.Notification, error)
	MarkNotificationSent(id string, sentAt time.Time, next time.Time) error
	DeleteNotification(id string) error

	// Utils
	GetConfigPath() string
	UserID() string
}
