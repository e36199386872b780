package models

import "github.com/shopspring/decimal"

// Risk tier constants
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Recommendation is a scored watch-list candidate. Computed per request,
// never persisted.
type Recommendation struct {
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	Risk           string          `json:"risk"`
	Forecast       string          `json:"forecast"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
}
