package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// CreateReminder inserts a new price reminder
func (db *DB) CreateReminder(r *models.Reminder) error {
	query := `
		INSERT INTO reminders (user_id, coin, target_price, notified, created_at)
		VALUES ($1, $2, $3, false, $4)
		RETURNING id
	`
	now := time.Now()
	err := db.conn.QueryRow(query, r.UserID, r.Coin, r.TargetPrice, now).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	r.Notified = false
	r.CreatedAt = now
	return nil
}

// GetActiveReminders retrieves a user's reminders that have not fired yet
func (db *DB) GetActiveReminders(userID int64) ([]*models.Reminder, error) {
	query := `
		SELECT id, user_id, coin, target_price, notified, created_at
		FROM reminders
		WHERE user_id = $1 AND notified = false
		ORDER BY id
	`
	return db.scanReminders(db.conn.Query(query, userID))
}

// GetAllActiveReminders retrieves every unfired reminder across users, for
// the sweep job
func (db *DB) GetAllActiveReminders() ([]*models.Reminder, error) {
	query := `
		SELECT id, user_id, coin, target_price, notified, created_at
		FROM reminders
		WHERE notified = false
		ORDER BY id
	`
	return db.scanReminders(db.conn.Query(query))
}

func (db *DB) scanReminders(rows *sql.Rows, err error) ([]*models.Reminder, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.ID, &r.UserID, &r.Coin, &r.TargetPrice, &r.Notified, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, &r)
	}
	return reminders, nil
}

// MarkReminderNotified marks a reminder as fired
func (db *DB) MarkReminderNotified(id int) error {
	result, err := db.conn.Exec(`UPDATE reminders SET notified = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder notified: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("reminder not found: %d", id)
	}
	return nil
}
