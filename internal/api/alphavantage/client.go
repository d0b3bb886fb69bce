package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Alias1177/StockPicker/internal/model"
	httpClient "github.com/Alias1177/StockPicker/internal/platform/http"
)

// ErrNoAPIKey is returned when the client was built without a key
var ErrNoAPIKey = errors.New("alpha vantage api key not configured")

// Client is the Alpha Vantage API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpClient.Client
	now        func() time.Time
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Alpha Vantage client
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Alpha Vantage API client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetryTimeout: options.MaxRetryTimeout,
		Component:       "alphavantage_http",
	}

	// Free tier allows a handful of calls per minute
	if httpOpts.RequestsPerSec == 0 {
		httpOpts.RequestsPerSec = 1
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}

	return &Client{
		apiKey:     options.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient.NewClient(httpOpts),
		now:        time.Now,
		logger:     log.With().Str("component", "alphavantage_client").Logger(),
	}
}

// Name identifies the provider in logs
func (c *Client) Name() string { return "alphavantage" }

// GetHistory fetches daily candles for the last lookbackDays calendar days
func (c *Client) GetHistory(ctx context.Context, symbol string, lookbackDays int) (*model.History, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	outputSize := "compact" // last 100 trading days
	if lookbackDays > 140 {
		outputSize = "full"
	}

	query := url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {ToExchangeSymbol(symbol)},
		"outputsize": {outputSize},
		"apikey":     {c.apiKey},
	}

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching daily series")

	var resp dailyResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/query", query, &resp); err != nil {
		return nil, fmt.Errorf("fetching daily series for %s: %w", symbol, err)
	}

	if msg := resp.apiMessage(); msg != "" {
		c.logger.Error().Str("symbol", symbol).Str("response", msg).Msg("Alpha Vantage API error")
		return nil, fmt.Errorf("alpha vantage api error for %s: %s", symbol, msg)
	}

	cutoff := c.now().AddDate(0, 0, -lookbackDays).Format("2006-01-02")
	candles := make([]model.Candle, 0, len(resp.Series))
	for date, bar := range resp.Series {
		if date < cutoff {
			continue
		}
		candle, err := bar.toCandle(date)
		if err != nil {
			return nil, fmt.Errorf("parsing %s bar %s: %w", symbol, date, err)
		}
		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		c.logger.Warn().Str("symbol", symbol).Msg("No candles in response")
		return nil, fmt.Errorf("empty data returned for %s", symbol)
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Datetime < candles[j].Datetime
	})

	currency := ""
	if strings.HasSuffix(symbol, ".L") {
		// LSE daily series are quoted in pence
		currency = "GBX"
	}

	return &model.History{
		Symbol:   symbol,
		Currency: currency,
		Candles:  candles,
	}, nil
}

// Overview fetches the company name, sector and market capitalisation
func (c *Client) Overview(ctx context.Context, symbol string) (*model.Profile, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	query := url.Values{
		"function": {"OVERVIEW"},
		"symbol":   {ToExchangeSymbol(symbol)},
		"apikey":   {c.apiKey},
	}

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching company overview")

	var resp overviewResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/query", query, &resp); err != nil {
		return nil, fmt.Errorf("fetching overview for %s: %w", symbol, err)
	}

	if msg := resp.apiMessage(); msg != "" {
		c.logger.Error().Str("symbol", symbol).Str("response", msg).Msg("Alpha Vantage API error")
		return nil, fmt.Errorf("alpha vantage api error for %s: %s", symbol, msg)
	}
	if resp.Symbol == "" && resp.Name == "" {
		return nil, fmt.Errorf("no overview data for %s", symbol)
	}

	marketCap, err := parseOptionalInt(resp.MarketCapitalization)
	if err != nil {
		return nil, fmt.Errorf("parsing %s market capitalization %q: %w", symbol, resp.MarketCapitalization, err)
	}

	sector := ""
	if s := strings.TrimSpace(resp.Sector); s != "" && s != "None" {
		// OVERVIEW reports sectors in upper case, e.g. FINANCIAL SERVICES
		sector = cases.Title(language.BritishEnglish).String(s)
	}

	return &model.Profile{
		Name:      strings.TrimSpace(resp.Name),
		Sector:    sector,
		MarketCap: marketCap,
	}, nil
}

// ToExchangeSymbol maps Yahoo-style London tickers (BARC.L) to Alpha
// Vantage's notation (BARC.LON).
func ToExchangeSymbol(symbol string) string {
	if strings.HasSuffix(symbol, ".L") {
		return strings.TrimSuffix(symbol, ".L") + ".LON"
	}
	return symbol
}

type dailyResponse struct {
	Series       map[string]dailyBar `json:"Time Series (Daily)"`
	ErrorMessage string              `json:"Error Message"`
	Note         string              `json:"Note"`
	Information  string              `json:"Information"`
}

func (r *dailyResponse) apiMessage() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	case r.Information != "" && len(r.Series) == 0:
		return r.Information
	}
	return ""
}

type overviewResponse struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Sector               string `json:"Sector"`
	MarketCapitalization string `json:"MarketCapitalization"`
	ErrorMessage         string `json:"Error Message"`
	Note                 string `json:"Note"`
	Information          string `json:"Information"`
}

func (r *overviewResponse) apiMessage() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	case r.Information != "" && r.Symbol == "":
		return r.Information
	}
	return ""
}

// parseOptionalInt treats Alpha Vantage's placeholders for absent numbers as 0
func parseOptionalInt(s string) (int64, error) {
	switch s = strings.TrimSpace(s); s {
	case "", "None", "-":
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

func (b dailyBar) toCandle(date string) (model.Candle, error) {
	var (
		c   = model.Candle{Datetime: date}
		err error
	)
	if c.Open, err = strconv.ParseFloat(b.Open, 64); err != nil {
		return c, err
	}
	if c.High, err = strconv.ParseFloat(b.High, 64); err != nil {
		return c, err
	}
	if c.Low, err = strconv.ParseFloat(b.Low, 64); err != nil {
		return c, err
	}
	if c.Close, err = strconv.ParseFloat(b.Close, 64); err != nil {
		return c, err
	}
	if b.Volume != "" {
		if c.Volume, err = strconv.ParseInt(b.Volume, 10, 64); err != nil {
			return c, err
		}
	}
	return c, nil
}
