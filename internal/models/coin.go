package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coin is a market-data provider asset descriptor.
type Coin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// PriceQuote is a cached price lookup result for one coin. Prices holds the
// full currency-to-price map returned by the provider.
type PriceQuote struct {
	CoinID    string                     `json:"coin_id"`
	Prices    map[string]decimal.Decimal `json:"prices"`
	FetchedAt time.Time                  `json:"fetched_at"`
}
