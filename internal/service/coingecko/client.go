package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"CoinWatch/internal/domain/models"
	drepo "CoinWatch/internal/domain/repository"
	xhttp "CoinWatch/pkg/http"
	"CoinWatch/pkg/util"
)

// Client implements MarketData backed by the CoinGecko market-chart endpoint.
type Client struct {
	baseURL      string
	vsCurrency   string
	lookbackDays int
	granularity  string
	http         *xhttp.Client
}

// New creates a CoinGecko market-data client. Lookback and granularity are
// fixed per process; every fetch requests the same window.
func New(baseURL, vsCurrency string, lookbackDays int, granularity string, timeout time.Duration) drepo.MarketData {
	return &Client{
		baseURL:      baseURL,
		vsCurrency:   vsCurrency,
		lookbackDays: lookbackDays,
		granularity:  granularity,
		http:         xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type marketChartResponse struct {
	// Pairs of [epoch-millis, price], chronological.
	Prices [][]float64 `json:"prices"`
}

// FetchSeries retrieves the sampled price history for one asset. Any
// network, status, or decode failure is returned as-is; the caller treats
// it as a per-asset FetchFailed and skips the asset for the cycle.
func (c *Client) FetchSeries(ctx context.Context, assetID string) (models.PriceSeries, error) {
	var resp marketChartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/coins/%s/market_chart", c.baseURL, url.PathEscape(assetID)),
		QueryParams: map[string][]string{
			"vs_currency": {c.vsCurrency},
			"days":        {strconv.Itoa(c.lookbackDays)},
			"interval":    {c.granularity},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("market chart %s: %w", assetID, err)
	}

	series := make(models.PriceSeries, 0, len(resp.Prices))
	for _, p := range resp.Prices {
		if len(p) < 2 {
			continue
		}
		ms := int64(p[0])
		series = append(series, models.PricePoint{
			Time:  time.UnixMilli(ms),
			Label: util.FormatClockMillis(ms),
			Price: p[1],
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("market chart %s: no price samples", assetID)
	}

	return series, nil
}

var _ drepo.MarketData = (*Client)(nil)
