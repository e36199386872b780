package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// Client is an HTTP client for the CoinGecko API. Every request carries a
// bounded timeout so a slow provider cannot stall a valuation run
// indefinitely.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a CoinGecko client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type coinDetail struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketData struct {
		CurrentPrice map[string]decimal.Decimal `json:"current_price"`
	} `json:"market_data"`
}

// FetchPrices returns the full currency-to-price map for a coin id
func (c *Client) FetchPrices(ctx context.Context, coinID string) (map[string]decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&community_data=false&developer_data=false",
		c.baseURL, url.PathEscape(coinID))

	var detail coinDetail
	if err := c.get(ctx, endpoint, &detail); err != nil {
		return nil, err
	}

	if len(detail.MarketData.CurrentPrice) == 0 {
		return nil, fmt.Errorf("no price data for coin %s", coinID)
	}
	return detail.MarketData.CurrentPrice, nil
}

// FetchCoinList returns every asset the provider knows, in provider order
func (c *Client) FetchCoinList(ctx context.Context) ([]models.Coin, error) {
	var coins []models.Coin
	if err := c.get(ctx, c.baseURL+"/coins/list", &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
