package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reminder is a one-shot price alert: once the coin trades at or above the
// target price it fires and is marked notified.
type Reminder struct {
	ID          int             `json:"id"`
	UserID      int64           `json:"user_id"`
	Coin        string          `json:"coin"`
	TargetPrice decimal.Decimal `json:"target_price"`
	Notified    bool            `json:"notified"`
	CreatedAt   time.Time       `json:"created_at"`
}
