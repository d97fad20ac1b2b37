package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/storage"
)

const notificationColumns = `id, user_id, title, body, trigger_at, repeat, anchor_at, last_sent, created_at`

func (s *Store) SaveNotification(n models.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.Repeat == "" {
		n.Repeat = models.RepeatNone
	}

	var anchor *time.Time
	if !n.Anchor.IsZero() {
		anchor = &n.Anchor
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO notifications (
			id, user_id, title, body, trigger_at, repeat, anchor_at, last_sent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			trigger_at = EXCLUDED.trigger_at,
			repeat = EXCLUDED.repeat,
			anchor_at = EXCLUDED.anchor_at,
			last_sent = EXCLUDED.last_sent
	`,
		n.ID, s.userID, n.Title, n.Body, n.TriggerAt, string(n.Repeat), anchor, n.LastSent, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (s *Store) GetNotification(id string) (models.Notification, error) {
	row := s.db.QueryRow(`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 AND id = $2`, s.userID, id)
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
		WHERE user_id = $1
		ORDER BY trigger_at ASC, id ASC
	`, s.userID)
}

func (s *Store) GetDueNotifications(now time.Time) ([]models.Notification, error) {
	return s.queryNotifications(`
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1 AND trigger_at <= $2
		ORDER BY trigger_at ASC, id ASC
	`, s.userID, now)
}

func (s *Store) MarkNotificationSent(id string, sentAt time.Time, next time.Time) error {
	if next.IsZero() {
		return s.DeleteNotification(id)
	}
	result, err := s.db.Exec(`
		UPDATE notifications SET last_sent = $1, trigger_at = $2
		WHERE user_id = $3 AND id = $4
	`, sentAt, next, s.userID, id)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return checkAffected(result, "notification", id)
}

func (s *Store) DeleteNotification(id string) error {
	result, err := s.db.Exec(`DELETE FROM notifications WHERE user_id = $1 AND id = $2`, s.userID, id)
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
	var repeat string
	var anchor, lastSent *time.Time
	if err := row.Scan(
		&n.ID, &n.UserID, &n.Title, &n.Body, &n.TriggerAt, &repeat, &anchor, &lastSent, &n.CreatedAt,
	); err != nil {
		return models.Notification{}, err
	}
	n.Repeat = models.Repeat(repeat)
	if anchor != nil {
		n.Anchor = *anchor
	}
	n.LastSent = lastSent
	return n, nil
}
