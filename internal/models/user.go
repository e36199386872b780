package models

import "time"

// User represents a registered portfolio owner.
type User struct {
	UserID    int64     `json:"user_id"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationSettings holds a user's scheduled report preferences.
type NotificationSettings struct {
	UserID       int64 `json:"user_id"`
	DailyReport  bool  `json:"daily_report"`
	WeeklyReport bool  `json:"weekly_report"`
}
