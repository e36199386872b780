package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type constants
const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
)

// Transaction represents a single recorded trade. History is append-only:
// transactions are never updated or deleted once written.
type Transaction struct {
	ID        int             `json:"id"`
	UserID    int64           `json:"user_id"`
	CoinName  string          `json:"coin_name"`
	Symbol    string          `json:"symbol"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	Type      string          `json:"type"`
	Exchange  string          `json:"exchange,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// BuyLeg is the narrow slice of a buy transaction needed for position
// aggregation.
type BuyLeg struct {
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
	Price  decimal.Decimal `json:"price"`
}
