package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// Store is the storage contract the valuation pipeline reads from.
type Store interface {
	GetBuyLegs(userID int64) ([]models.BuyLeg, error)
	GetUserCurrency(userID int64) (string, error)
}

// PriceSource supplies live prices. A nil result means the price is
// unavailable and the asset should be skipped.
type PriceSource interface {
	GetPrice(ctx context.Context, coinID, currency string) *decimal.Decimal
}

// Service aggregates transaction history into positions and values them
// against live prices.
type Service struct {
	store  Store
	prices PriceSource
	log    zerolog.Logger
}

// NewService creates a portfolio service
func NewService(store Store, prices PriceSource, log zerolog.Logger) *Service {
	return &Service{
		store:  store,
		prices: prices,
		log:    log.With().Str("component", "portfolio").Logger(),
	}
}

// Positions collapses a user's buy transactions into per-symbol positions,
// in first-seen symbol order. Quantity is the sum of buy amounts; average
// cost is the plain mean of the buy prices for the symbol. Symbols whose
// summed quantity is not positive are dropped.
func (s *Service) Positions(userID int64) ([]models.Position, error) {
	legs, err := s.store.GetBuyLegs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load buy history: %w", err)
	}

	type group struct {
		quantity decimal.Decimal
		priceSum decimal.Decimal
		count    int64
	}

	var order []string
	groups := make(map[string]*group)
	for _, leg := range legs {
		g, ok := groups[leg.Symbol]
		if !ok {
			g = &group{}
			groups[leg.Symbol] = g
			order = append(order, leg.Symbol)
		}
		g.quantity = g.quantity.Add(leg.Amount)
		g.priceSum = g.priceSum.Add(leg.Price)
		g.count++
	}

	var positions []models.Position
	for _, symbol := range order {
		g := groups[symbol]
		if g.quantity.Sign() <= 0 {
			continue
		}
		positions = append(positions, models.Position{
			Symbol:   symbol,
			Quantity: g.quantity,
			AvgCost:  g.priceSum.Div(decimal.NewFromInt(g.count)),
		})
	}
	return positions, nil
}

// Valuate computes the current valuation of a user's portfolio in their
// display currency. Assets whose price lookup fails are silently omitted
// from both the per-asset rows and the totals; a provider-wide outage
// therefore yields a valid valuation with no assets and zero totals.
func (s *Service) Valuate(ctx context.Context, userID int64) (*models.PortfolioValuation, error) {
	positions, err := s.Positions(userID)
	if err != nil {
		return nil, err
	}

	currency, err := s.store.GetUserCurrency(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user currency: %w", err)
	}

	valuation := &models.PortfolioValuation{}
	totalInvested := decimal.Zero
	totalCurrent := decimal.Zero

	for _, pos := range positions {
		price := s.prices.GetPrice(ctx, pos.Symbol, currency)
		if price == nil {
			s.log.Debug().Int64("user", userID).Str("symbol", pos.Symbol).Msg("no price, skipping asset")
			continue
		}

		invested := pos.Quantity.Mul(pos.AvgCost)
		current := pos.Quantity.Mul(*price)
		profit := current.Sub(invested)
		roi := decimal.Zero
		if !invested.IsZero() {
			roi = profit.Div(invested).Mul(decimal.NewFromInt(100))
		}

		valuation.Assets = append(valuation.Assets, models.AssetValuation{
			Symbol:       strings.ToUpper(pos.Symbol),
			Quantity:     pos.Quantity,
			AvgCost:      pos.AvgCost,
			CurrentPrice: *price,
			Invested:     invested,
			Current:      current,
			Profit:       profit,
			ROI:          roi,
		})

		totalInvested = totalInvested.Add(invested)
		totalCurrent = totalCurrent.Add(current)
	}

	totalProfit := totalCurrent.Sub(totalInvested)
	totalROI := decimal.Zero
	if !totalInvested.IsZero() {
		totalROI = totalProfit.Div(totalInvested).Mul(decimal.NewFromInt(100))
	}

	valuation.Totals = models.PortfolioTotals{
		Invested: totalInvested.Round(2),
		Current:  totalCurrent.Round(2),
		Profit:   totalProfit.Round(2),
		ROI:      totalROI.Round(2),
	}
	return valuation, nil
}
