package recommendation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// watchlist is the fixed set of coins scored on every request.
var watchlist = []string{
	"bitcoin", "ethereum", "solana", "cardano",
	"dogecoin", "pepecoin", "bonk", "litecoin", "chainlink",
}

// highRiskKeywords tag meme coins as high risk.
var highRiskKeywords = []string{"pepe", "doge", "shib"}

// expectedGrowth maps a risk tier to its assumed growth percentage over
// the horizon.
var expectedGrowth = map[string]int64{
	models.RiskHigh:   15,
	models.RiskMedium: 8,
	models.RiskLow:    3,
}

// maxRecommendations caps the result list.
const maxRecommendations = 2

// PriceSource is the price adapter surface the scorer consumes.
type PriceSource interface {
	GetPrice(ctx context.Context, coinID, currency string) *decimal.Decimal
	Search(ctx context.Context, query string) *models.Coin
}

// Service scores the watch-list against an investment goal.
type Service struct {
	prices PriceSource
	log    zerolog.Logger
}

// NewService creates a recommendation service
func NewService(prices PriceSource, log zerolog.Logger) *Service {
	return &Service{
		prices: prices,
		log:    log.With().Str("component", "recommendation").Logger(),
	}
}

// Recommend returns up to two watch-list coins whose expected return over
// the horizon meets the desired profit, best first. Candidates that cannot
// be resolved or priced are skipped. The fetched price confirms the coin
// is tradable but does not enter the scoring arithmetic; the expected
// return is driven by the risk tier alone.
func (s *Service) Recommend(ctx context.Context, amount, desiredProfit decimal.Decimal, days int) []models.Recommendation {
	var recommendations []models.Recommendation

	for _, coinID := range watchlist {
		coin := s.prices.Search(ctx, coinID)
		if coin == nil {
			s.log.Debug().Str("coin", coinID).Msg("candidate not resolvable, skipping")
			continue
		}

		if price := s.prices.GetPrice(ctx, coin.Symbol, "usd"); price == nil {
			s.log.Debug().Str("coin", coinID).Msg("candidate has no price, skipping")
			continue
		}

		risk := models.RiskMedium
		for _, keyword := range highRiskKeywords {
			if strings.Contains(coinID, keyword) {
				risk = models.RiskHigh
				break
			}
		}

		growth := expectedGrowth[risk]
		expectedReturn := amount.Mul(decimal.NewFromInt(growth)).Div(decimal.NewFromInt(100))
		if expectedReturn.LessThan(desiredProfit) {
			continue
		}

		recommendations = append(recommendations, models.Recommendation{
			Name:           coin.Name,
			Symbol:         strings.ToUpper(coin.Symbol),
			Risk:           risk,
			Forecast:       fmt.Sprintf("+%d%% in %d days", growth, days),
			ExpectedReturn: expectedReturn,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].ExpectedReturn.GreaterThan(recommendations[j].ExpectedReturn)
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}
