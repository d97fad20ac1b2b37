package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/storage"
)

const notificationColumns = `id, user_id, title, body, trigger_at, repeat, anchor_at, last_sent, created_at`

// SaveNotification inserts n or replaces the entry with the same id.
func (s *Store) SaveNotification(n models.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.Repeat == "" {
		n.Repeat = models.RepeatNone
	}

	var anchor string
	if !n.Anchor.IsZero() {
		anchor = n.Anchor.UTC().Format(time.RFC3339)
	}
	var lastSent *string
	if n.LastSent != nil {
		str := n.LastSent.UTC().Format(time.RFC3339)
		lastSent = &str
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO notifications (
			id, user_id, title, body, trigger_at, repeat, anchor_at, last_sent, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			trigger_at = excluded.trigger_at,
			repeat = excluded.repeat,
			anchor_at = excluded.anchor_at,
			last_sent = excluded.last_sent
	`,
		n.ID, s.userID, n.Title, n.Body, n.TriggerAt.UTC().Format(time.RFC3339),
		string(n.Repeat), anchor, lastSent, createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (s *Store) GetNotification(id string) (models.Notification, error) {
	row := s.db.QueryRow(`SELECT `+notificationColumns+` FROM notifications WHERE user_id = ? AND id = ?`, s.userID, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Notification{}, fmt.Errorf("notification %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

func (s *Store) GetNotifications() ([]models.Notification, error) {
	return s.queryNotifications(`
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = ?
		ORDER BY trigger_at ASC, id ASC
	`, s.userID)
}

// GetDueNotifications returns entries whose trigger time is at or before now.
// RFC3339 in UTC sorts lexically, so the comparison happens in SQL.
func (s *Store) GetDueNotifications(now time.Time) ([]models.Notification, error) {
	return s.queryNotifications(`
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = ? AND trigger_at <= ?
		ORDER BY trigger_at ASC, id ASC
	`, s.userID, now.UTC().Format(time.RFC3339))
}

// MarkNotificationSent records a delivery. A zero next removes the entry,
// otherwise it moves to the next occurrence.
func (s *Store) MarkNotificationSent(id string, sentAt time.Time, next time.Time) error {
	if next.IsZero() {
		return s.DeleteNotification(id)
	}
	result, err := s.db.Exec(`
		UPDATE notifications SET last_sent = ?, trigger_at = ?
		WHERE user_id = ? AND id = ?
	`, sentAt.UTC().Format(time.RFC3339), next.UTC().Format(time.RFC3339), s.userID, id)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return checkAffected(result, "notification", id)
}

func (s *Store) DeleteNotification(id string) error {
	result, err := s.db.Exec(`DELETE FROM notifications WHERE user_id = ? AND id = ?`, s.userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return checkAffected(result, "notification", id)
}

func (s *Store) queryNotifications(query string, args ...any) ([]models.Notification, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return out, nil
}

func scanNotification(row scanner) (models.Notification, error) {
	var n models.Notification
	var repeat, triggerAt, anchor, createdAt string
	var lastSent *string
	if err := row.Scan(
		&n.ID, &n.UserID, &n.Title, &n.Body, &triggerAt, &repeat, &anchor, &lastSent, &createdAt,
	); err != nil {
		return models.Notification{}, err
	}
	n.Repeat = models.Repeat(repeat)

	var err error
	if n.TriggerAt, err = time.Parse(time.RFC3339, triggerAt); err != nil {
		return models.Notification{}, fmt.Errorf("failed to parse trigger_at: %w", err)
	}
	if anchor != "" {
		if n.Anchor, err = time.Parse(time.RFC3339, anchor); err != nil {
			return models.Notification{}, fmt.Errorf("failed to parse anchor_at: %w", err)
		}
	}
	if lastSent != nil {
		t, err := time.Parse(time.RFC3339, *lastSent)
		if err != nil {
			return models.Notification{}, fmt.Errorf("failed to parse last_sent: %w", err)
		}
		n.LastSent = &t
	}
	if n.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Notification{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return n, nil
}
