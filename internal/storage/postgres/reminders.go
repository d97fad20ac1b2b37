package postgres

import (
	"database/sql"
	"errors"
	"fmt"

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
			$1, $2, (SELECT COALESCE(MAX(position), -1) + 1 FROM reminders WHERE user_id = $2),
			$3, $4, $5, $6, $7, $8, $9
		)
	`,
		r.ID, s.userID, r.Title, r.Description, r.Date, r.Time, string(r.Repeat),
		r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	row := s.db.QueryRow(`SELECT `+reminderColumns+` FROM reminders WHERE user_id = $1 AND id = $2`, s.userID, id)
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
		WHERE user_id = $1
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
			title = $1, description = $2, date = $3, time = $4, repeat = $5, updated_at = $6
		WHERE user_id = $7 AND id = $8
	`,
		r.Title, r.Description, r.Date, r.Time, string(r.Repeat), r.UpdatedAt,
		s.userID, r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return checkAffected(result, "reminder", r.ID)
}

func (s *Store) DeleteReminder(id string) error {
	result, err := s.db.Exec(`DELETE FROM reminders WHERE user_id = $1 AND id = $2`, s.userID, id)
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
	var repeat string
	if err := row.Scan(
		&r.ID, &r.UserID, &r.Title, &r.Description, &r.Date, &r.Time,
		&repeat, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return models.Reminder{}, err
	}
	r.Repeat = models.Repeat(repeat)
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
