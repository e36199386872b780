package models

import "github.com/shopspring/decimal"

// Position is a user's net holding in one coin, derived from buy
// transactions. AvgCost is the arithmetic mean of the buy prices for the
// symbol, not a quantity-weighted average.
type Position struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	AvgCost  decimal.Decimal `json:"avg_cost"`
}

// AssetValuation is one position enriched with a live price.
type AssetValuation struct {
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Invested     decimal.Decimal `json:"invested"`
	Current      decimal.Decimal `json:"current"`
	Profit       decimal.Decimal `json:"profit"`
	ROI          decimal.Decimal `json:"roi"`
}

// PortfolioTotals aggregates valuations across all priced assets. All four
// values are rounded to 2 decimal places.
type PortfolioTotals struct {
	Invested decimal.Decimal `json:"invested"`
	Current  decimal.Decimal `json:"current"`
	Profit   decimal.Decimal `json:"profit"`
	ROI      decimal.Decimal `json:"roi"`
}

// PortfolioValuation is the full valuation of one user's holdings. Assets
// keep position order; assets whose price lookup failed are absent from
// both Assets and Totals.
type PortfolioValuation struct {
	Assets []AssetValuation `json:"assets"`
	Totals PortfolioTotals  `json:"totals"`
}
