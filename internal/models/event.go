package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTransactionRecorded = "TRANSACTION_RECORDED"
	EventDailyReport         = "DAILY_REPORT"
	EventWeeklyReport        = "WEEKLY_REPORT"
	EventPriceAlert          = "PRICE_ALERT"
)

// TransactionEvent is published when a trade is recorded.
type TransactionEvent struct {
	EventType   string       `json:"event_type"`
	UserID      int64        `json:"user_id"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// ReportEvent carries a rendered portfolio report to downstream delivery.
// Chart is a PNG image; it serializes as base64 in JSON.
type ReportEvent struct {
	EventType string    `json:"event_type"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	Chart     []byte    `json:"chart,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceAlertEvent is published when a price reminder fires.
type PriceAlertEvent struct {
	EventType    string          `json:"event_type"`
	UserID       int64           `json:"user_id"`
	Coin         string          `json:"coin"`
	TargetPrice  decimal.Decimal `json:"target_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Timestamp    time.Time       `json:"timestamp"`
}
