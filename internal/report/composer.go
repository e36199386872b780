// Package report turns portfolio valuations into the shapes consumed by
// chart rendering and the scheduled report payloads. Everything here is
// pure: no I/O, no clocks.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// ChartSeries is the label/value input for the pie chart renderer. When
// the valuation has no assets, the series carries a single placeholder
// slice and Empty is set so the renderer can draw the no-data state.
type ChartSeries struct {
	Labels []string
	Values []decimal.Decimal
	Empty  bool
}

// ChartData maps a valuation to a chart series, preserving asset order.
// Slice values are current asset values.
func ChartData(v *models.PortfolioValuation) ChartSeries {
	if len(v.Assets) == 0 {
		return ChartSeries{
			Labels: []string{"No data"},
			Values: []decimal.Decimal{decimal.NewFromInt(1)},
			Empty:  true,
		}
	}

	series := ChartSeries{
		Labels: make([]string, 0, len(v.Assets)),
		Values: make([]decimal.Decimal, 0, len(v.Assets)),
	}
	for _, asset := range v.Assets {
		series.Labels = append(series.Labels, asset.Symbol)
		series.Values = append(series.Values, asset.Current)
	}
	return series
}

// DailySummary is the payload of the daily report cadence.
type DailySummary struct {
	CurrentValue decimal.Decimal `json:"current_value"`
	Profit       decimal.Decimal `json:"profit"`
	ROI          decimal.Decimal `json:"roi"`
	AssetCount   int             `json:"asset_count"`
}

// Daily builds the daily summary from a valuation
func Daily(v *models.PortfolioValuation) DailySummary {
	return DailySummary{
		CurrentValue: v.Totals.Current,
		Profit:       v.Totals.Profit,
		ROI:          v.Totals.ROI,
		AssetCount:   len(v.Assets),
	}
}

// TopPerformer names the asset with the largest absolute profit.
type TopPerformer struct {
	Symbol string          `json:"symbol"`
	Profit decimal.Decimal `json:"profit"`
}

// WeeklySummary is the payload of the weekly report cadence.
type WeeklySummary struct {
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Profit       decimal.Decimal `json:"profit"`
	ROI          decimal.Decimal `json:"roi"`
	TopPerformer *TopPerformer   `json:"top_performer,omitempty"`
}

// Weekly builds the weekly summary from a valuation. On profit ties the
// earliest asset wins.
func Weekly(v *models.PortfolioValuation) WeeklySummary {
	summary := WeeklySummary{
		Invested:     v.Totals.Invested,
		CurrentValue: v.Totals.Current,
		Profit:       v.Totals.Profit,
		ROI:          v.Totals.ROI,
	}

	for i, asset := range v.Assets {
		if summary.TopPerformer == nil || asset.Profit.GreaterThan(summary.TopPerformer.Profit) {
			summary.TopPerformer = &TopPerformer{Symbol: v.Assets[i].Symbol, Profit: asset.Profit}
		}
	}
	return summary
}

// FormatDaily renders the daily summary as report text
func FormatDaily(s DailySummary) string {
	var b strings.Builder
	b.WriteString("Daily report:\n\n")
	fmt.Fprintf(&b, "Total value: $%s\n", s.CurrentValue.StringFixed(2))
	fmt.Fprintf(&b, "Profit: %s (%s%%)\n", signedMoney(s.Profit), signedPercent(s.ROI))
	return b.String()
}

// FormatWeekly renders the weekly summary as report text
func FormatWeekly(s WeeklySummary) string {
	var b strings.Builder
	b.WriteString("Weekly report:\n\n")
	fmt.Fprintf(&b, "Total invested: $%s\n", s.Invested.StringFixed(2))
	fmt.Fprintf(&b, "Current value: $%s\n", s.CurrentValue.StringFixed(2))
	fmt.Fprintf(&b, "Profit: %s (%s%%)\n", signedMoney(s.Profit), signedPercent(s.ROI))
	if s.TopPerformer != nil {
		fmt.Fprintf(&b, "\nTop performer:\n%s (%s)\n", s.TopPerformer.Symbol, signedMoney(s.TopPerformer.Profit))
	}
	return b.String()
}

func signedMoney(v decimal.Decimal) string {
	if v.Sign() < 0 {
		return "-$" + v.Abs().StringFixed(2)
	}
	return "+$" + v.StringFixed(2)
}

func signedPercent(v decimal.Decimal) string {
	if v.Sign() < 0 {
		return v.StringFixed(2)
	}
	return "+" + v.StringFixed(2)
}
