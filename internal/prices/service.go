package prices

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// Provider is the slice of the market-data API the adapter consumes.
type Provider interface {
	FetchPrices(ctx context.Context, coinID string) (map[string]decimal.Decimal, error)
	FetchCoinList(ctx context.Context) ([]models.Coin, error)
}

// Service looks up prices and resolves coin queries, with a TTL cache in
// front of the provider. Provider failures are logged and surface to
// callers as nil results, never as errors: a missing price is a normal
// outcome here.
type Service struct {
	provider Provider
	cache    Cache
	log      zerolog.Logger
}

// NewService creates a price service
func NewService(provider Provider, cache Cache, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		log:      log.With().Str("component", "prices").Logger(),
	}
}

// GetPrice returns the current price of a coin in the given currency, or
// nil if the provider fails or does not quote that currency. A cache hit
// younger than the TTL skips the provider entirely.
func (s *Service) GetPrice(ctx context.Context, coinID, currency string) *decimal.Decimal {
	currency = strings.ToLower(currency)

	priceMap, ok := s.cache.Get(ctx, coinID)
	if !ok {
		fetched, err := s.provider.FetchPrices(ctx, coinID)
		if err != nil {
			s.log.Warn().Err(err).Str("coin", coinID).Msg("price lookup failed")
			return nil
		}
		s.cache.Set(ctx, coinID, fetched)
		priceMap = fetched
	}

	price, ok := priceMap[currency]
	if !ok {
		return nil
	}
	return &price
}

// Search resolves a free-text query to a coin descriptor. A query matches
// when it is a substring of the coin name or equals the coin symbol,
// case-insensitively; the first match in provider list order wins. Returns
// nil on no match or provider failure.
func (s *Service) Search(ctx context.Context, query string) *models.Coin {
	coins, err := s.provider.FetchCoinList(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("coin list fetch failed")
		return nil
	}

	q := strings.ToLower(query)
	for _, coin := range coins {
		if strings.Contains(strings.ToLower(coin.Name), q) || q == strings.ToLower(coin.Symbol) {
			c := coin
			return &c
		}
	}
	return nil
}
