package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/fitlife/internal/models"
	"github.com/julianstephens/fitlife/internal/storage"
)

const reminderColumns = `id, user_id, title, description, date, time, repeat, created_at, updated_at`

func (s *Store) AddReminder(r models.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Repeat == "" {
		r.Repeat = models.RepeatNone
	}

	_, err := s.db.Exec(`
		INSERT INTO reminders (
			id, user_id, position, title, description, date, time, repeat, created_at, updated_at
		) VALUES (
			?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM reminders WHERE user_id = ?),
			?, ?, ?, ?, ?, ?, ?
		)
	`,
		r.ID, s.userID, s.userID,
		r.Title, r.Description, r.Date, r.Time, string(r.Repeat),
		r.CreatedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	row := s.db.QueryRow(`SELECT `+reminderColumns+` FROM reminders WHERE user_id = ? AND id = ?`, s.userID, id)
	r, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reminder{}, fmt.Errorf("reminder %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to get reminder: %w", err)
	}
	return r, nil
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE user_id = ?
		ORDER BY position ASC
	`, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}
	return reminders, nil
}

func (s *Store) UpdateReminder(r models.Reminder) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Repeat == "" {
		r.Repeat = models.RepeatNone
	}

	result, err := s.db.Exec(`
		UPDATE reminders SET
			title = ?, description = ?, date = ?, time = ?, repeat = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`,
		r.Title, r.Description, r.Date, r.Time, string(r.Repeat), r.UpdatedAt.Format(time.RFC3339),
		s.userID, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return checkAffected(result, "reminder", r.ID)
}

func (s *Store) DeleteReminder(id string) error {
	result, err := s.db.Exec(`DELETE FROM reminders WHERE user_id = ? AND id = ?`, s.userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return checkAffected(result, "reminder", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(row scanner) (models.Reminder, error) {
	var r models.Reminder
	var repeat, createdAt, updatedAt string
	if err := row.Scan(
		&r.ID, &r.UserID, &r.Title, &r.Description, &r.Date, &r.Time,
		&repeat, &createdAt, &updatedAt,
	); err != nil {
		return models.Reminder{}, err
	}
	r.Repeat = models.Repeat(repeat)

	var err error
	if r.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Reminder{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.Reminder{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return r, nil
}

func checkAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
