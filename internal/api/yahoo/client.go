package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPicker/internal/model"
	httpClient "github.com/Alias1177/StockPicker/internal/platform/http"
)

// Client is the Yahoo Finance chart API client
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	now        func() time.Time
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Yahoo Finance client
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Yahoo Finance client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetryTimeout: options.MaxRetryTimeout,
		Component:       "yahoo_http",
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient.NewClient(httpOpts),
		now:        time.Now,
		logger:     log.With().Str("component", "yahoo_client").Logger(),
	}
}

// Name identifies the provider in logs
func (c *Client) Name() string { return "yahoo" }

// GetHistory fetches daily candles covering the last lookbackDays calendar
// days, oldest first.
func (c *Client) GetHistory(ctx context.Context, symbol string, lookbackDays int) (*model.History, error) {
	end := c.now()
	start := end.AddDate(0, 0, -lookbackDays)

	query := url.Values{
		"interval":       {"1d"},
		"period1":        {strconv.FormatInt(start.Unix(), 10)},
		"period2":        {strconv.FormatInt(end.Unix(), 10)},
		"includePrePost": {"false"},
		"events":         {"div,splits"},
	}

	c.logger.Debug().Str("symbol", symbol).Int("lookback_days", lookbackDays).Msg("Fetching history")

	var resp chartResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/v8/finance/chart/"+url.PathEscape(symbol), query, &resp); err != nil {
		return nil, fmt.Errorf("fetching chart for %s: %w", symbol, err)
	}

	history, err := parseChart(symbol, &resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(history.Candles)).Msg("Fetched history")
	return history, nil
}

func parseChart(symbol string, resp *chartResponse) (*model.History, error) {
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s - %s", symbol, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no result in response for %s", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no timestamps in response for %s", symbol)
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data in response for %s", symbol)
	}

	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n ||
		len(quote.Close) != n || len(quote.Volume) != n {
		return nil, fmt.Errorf("data alignment error for %s", symbol)
	}

	offset := int64(result.Meta.Gmtoffset)
	candles := make([]model.Candle, 0, n)
	for i, ts := range result.Timestamp {
		// Yahoo pads holidays and the in-progress bar with nulls
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		var volume int64
		if quote.Volume[i] != nil {
			volume = int64(*quote.Volume[i])
		}
		candles = append(candles, model.Candle{
			Datetime: time.Unix(ts+offset, 0).UTC().Format("2006-01-02"),
			Open:     *quote.Open[i],
			High:     *quote.High[i],
			Low:      *quote.Low[i],
			Close:    *quote.Close[i],
			Volume:   volume,
		})
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("empty data returned for %s", symbol)
	}

	// Sort candles by datetime (oldest first for proper calculations)
	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Datetime < candles[j].Datetime
	})

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}
	if name == "" {
		name = symbol
	}

	return &model.History{
		Symbol:      symbol,
		CompanyName: name,
		Currency:    result.Meta.Currency,
		Candles:     candles,
	}, nil
}
