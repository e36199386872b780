package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// DefaultCurrency is the display currency for users who never set one.
const DefaultCurrency = "usd"

// EnsureUser registers a user if not already present, along with default
// notification settings. Safe to call on every request.
func (db *DB) EnsureUser(userID int64) error {
	query := `INSERT INTO users (user_id, currency, created_at) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO NOTHING`
	if _, err := db.conn.Exec(query, userID, DefaultCurrency, time.Now()); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}

	settingsQuery := `INSERT INTO user_settings (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	if _, err := db.conn.Exec(settingsQuery, userID); err != nil {
		return fmt.Errorf("failed to ensure user settings: %w", err)
	}
	return nil
}

// GetUserCurrency returns the user's display currency, defaulting to usd
// for unknown users.
func (db *DB) GetUserCurrency(userID int64) (string, error) {
	var currency string
	err := db.conn.QueryRow(`SELECT currency FROM users WHERE user_id = $1`, userID).Scan(&currency)
	if err == sql.ErrNoRows {
		return DefaultCurrency, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user currency: %w", err)
	}
	return currency, nil
}

// SetUserCurrency updates the user's display currency
func (db *DB) SetUserCurrency(userID int64, currency string) error {
	result, err := db.conn.Exec(`UPDATE users SET currency = $1 WHERE user_id = $2`, strings.ToLower(currency), userID)
	if err != nil {
		return fmt.Errorf("failed to set user currency: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %d", userID)
	}
	return nil
}

// GetAllUserIDs returns the IDs of every registered user
func (db *DB) GetAllUserIDs() ([]int64, error) {
	rows, err := db.conn.Query(`SELECT user_id FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetNotificationSettings returns a user's report preferences. Users with
// no settings row get both reports enabled, matching the column defaults.
func (db *DB) GetNotificationSettings(userID int64) (*models.NotificationSettings, error) {
	s := &models.NotificationSettings{UserID: userID, DailyReport: true, WeeklyReport: true}
	err := db.conn.QueryRow(
		`SELECT daily_report, weekly_report FROM user_settings WHERE user_id = $1`, userID,
	).Scan(&s.DailyReport, &s.WeeklyReport)
	if err == sql.ErrNoRows {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	return s, nil
}

// ToggleDailyReport flips the daily report flag and returns the new value
func (db *DB) ToggleDailyReport(userID int64) (bool, error) {
	var enabled bool
	err := db.conn.QueryRow(
		`UPDATE user_settings SET daily_report = NOT daily_report WHERE user_id = $1 RETURNING daily_report`, userID,
	).Scan(&enabled)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("user settings not found: %d", userID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle daily report: %w", err)
	}
	return enabled, nil
}

// ToggleWeeklyReport flips the weekly report flag and returns the new value
func (db *DB) ToggleWeeklyReport(userID int64) (bool, error) {
	var enabled bool
	err := db.conn.QueryRow(
		`UPDATE user_settings SET weekly_report = NOT weekly_report WHERE user_id = $1 RETURNING weekly_report`, userID,
	).Scan(&enabled)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("user settings not found: %d", userID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle weekly report: %w", err)
	}
	return enabled, nil
}
