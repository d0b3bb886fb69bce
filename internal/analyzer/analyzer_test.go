package analyzer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/StockPicker/internal/model"
)

type stubProvider struct {
	name   string
	data   map[string]*model.History
	err    error
	calls  int32
	active int32
	peak   int32
	delay  time.Duration
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) GetHistory(ctx context.Context, symbol string, _ int) (*model.History, error) {
	atomic.AddInt32(&s.calls, 1)
	n := atomic.AddInt32(&s.active, 1)
	defer atomic.AddInt32(&s.active, -1)
	for {
		p := atomic.LoadInt32(&s.peak)
		if n <= p || atomic.CompareAndSwapInt32(&s.peak, p, n) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	if h, ok := s.data[symbol]; ok {
		return h, nil
	}
	return nil, errors.New("unknown symbol " + symbol)
}

type stubSentiment struct {
	mu    sync.Mutex
	calls []string
}

func (s *stubSentiment) Analyze(_ context.Context, symbol, companyName string) model.Sentiment {
	s.mu.Lock()
	s.calls = append(s.calls, symbol+"|"+companyName)
	s.mu.Unlock()
	return model.Sentiment{Score: 0.7, NewsCount: 2}
}

type stubProfiles struct {
	profiles map[string]*model.Profile
	err      error
	calls    []string
}

func (s *stubProfiles) Overview(_ context.Context, symbol string) (*model.Profile, error) {
	s.calls = append(s.calls, symbol)
	if s.err != nil {
		return nil, s.err
	}
	return s.profiles[symbol], nil
}

func history(symbol, name string, closes ...float64) *model.History {
	h := &model.History{Symbol: symbol, CompanyName: name}
	for _, c := range closes {
		h.Candles = append(h.Candles, model.Candle{Open: c, High: c, Low: c, Close: c, Volume: 1000})
	}
	return h
}

func fixedNow() time.Time { return time.Date(2024, 6, 6, 17, 0, 0, 0, time.UTC) }

func TestAnalyzeStock(t *testing.T) {
	primary := &stubProvider{name: "yahoo", data: map[string]*model.History{
		"BARC.L": history("BARC.L", "Barclays PLC", 200, 201, 202, 203, 204, 210),
	}}
	sent := &stubSentiment{}
	a := New(Options{LookbackDays: 30, Indicators: map[string]bool{"Volume": true}}, sent, primary)
	a.now = fixedNow

	got, err := a.AnalyzeStock(context.Background(), "BARC.L")
	require.NoError(t, err)

	assert.Equal(t, "BARC.L", got.Symbol)
	assert.Equal(t, "Barclays PLC", got.CompanyName)
	assert.Equal(t, "2024-06-06", got.AnalysisDate)
	assert.Equal(t, "Unknown", got.Sector)
	assert.InDelta(t, 210, got.Indicators.CurrentPrice, 1e-9)
	assert.InDelta(t, 5, got.Indicators.PriceChange5d, 1e-9)
	assert.InDelta(t, 0.7, got.Sentiment.Score, 1e-9)
	assert.Equal(t, []string{"BARC.L|Barclays PLC"}, sent.calls)
}

func TestAnalyzeStockFallsBack(t *testing.T) {
	primary := &stubProvider{name: "yahoo", err: errors.New("503")}
	empty := &stubProvider{name: "empty", data: map[string]*model.History{"BP.L": {Symbol: "BP.L"}}}
	fallback := &stubProvider{name: "alphavantage", data: map[string]*model.History{
		"BP.L": history("BP.L", "", 480),
	}}

	a := New(Options{LookbackDays: 30}, nil, primary, empty, fallback)
	got, err := a.AnalyzeStock(context.Background(), "BP.L")
	require.NoError(t, err)

	assert.Equal(t, "BP.L", got.CompanyName)
	assert.Equal(t, model.NeutralSentiment(), got.Sentiment)
	assert.EqualValues(t, 1, primary.calls)
	assert.EqualValues(t, 1, fallback.calls)
}

func TestAnalyzeStockAllProvidersFail(t *testing.T) {
	boom := errors.New("quota exceeded")
	a := New(Options{}, nil, &stubProvider{name: "a", err: errors.New("503")}, &stubProvider{name: "b", err: boom})

	_, err := a.AnalyzeStock(context.Background(), "VOD.L")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "VOD.L")

	_, err = New(Options{}, nil).AnalyzeStock(context.Background(), "VOD.L")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAnalyzeManyKeepsOrderAndSkipsFailures(t *testing.T) {
	provider := &stubProvider{
		name:  "yahoo",
		delay: 20 * time.Millisecond,
		data: map[string]*model.History{
			"BARC.L": history("BARC.L", "Barclays", 1),
			"BP.L":   history("BP.L", "BP", 2),
			"LLOY.L": history("LLOY.L", "Lloyds", 3),
			"HSBA.L": history("HSBA.L", "HSBC", 4),
		},
	}
	a := New(Options{Workers: 2}, nil, provider)

	got, err := a.AnalyzeMany(context.Background(), []string{"BARC.L", "BP.L", "NOPE.L", "LLOY.L", "HSBA.L"})
	require.NoError(t, err)

	var symbols []string
	for _, s := range got {
		symbols = append(symbols, s.Symbol)
	}
	assert.Equal(t, []string{"BARC.L", "BP.L", "LLOY.L", "HSBA.L"}, symbols)
	assert.EqualValues(t, 5, provider.calls)
	assert.LessOrEqual(t, atomic.LoadInt32(&provider.peak), int32(2))
}

func TestAnalyzeManyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(Options{Workers: 1}, nil, &stubProvider{name: "yahoo"})
	_, err := a.AnalyzeMany(ctx, []string{"BARC.L"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeStockMergesProfile(t *testing.T) {
	provider := &stubProvider{name: "alphavantage", data: map[string]*model.History{
		"BARC.L": history("BARC.L", "", 200, 210),
	}}
	profiles := &stubProfiles{profiles: map[string]*model.Profile{
		"BARC.L": {Name: "Barclays PLC", Sector: "Financial Services", MarketCap: 32450000000},
	}}
	sent := &stubSentiment{}

	a := New(Options{LookbackDays: 30}, sent, provider).WithProfiles(profiles)
	got, err := a.AnalyzeStock(context.Background(), "BARC.L")
	require.NoError(t, err)

	assert.Equal(t, "Barclays PLC", got.CompanyName)
	assert.Equal(t, "Financial Services", got.Sector)
	assert.Equal(t, int64(32450000000), got.MarketCap)
	assert.Equal(t, []string{"BARC.L|Barclays PLC"}, sent.calls, "news search uses the profile name")
}

func TestAnalyzeStockKeepsProviderProfile(t *testing.T) {
	h := history("BP.L", "BP p.l.c.", 480)
	h.Sector = "Energy"
	h.MarketCap = 75000000000
	provider := &stubProvider{name: "yahoo", data: map[string]*model.History{"BP.L": h}}
	profiles := &stubProfiles{}

	got, err := New(Options{}, nil, provider).WithProfiles(profiles).AnalyzeStock(context.Background(), "BP.L")
	require.NoError(t, err)

	assert.Equal(t, "Energy", got.Sector)
	assert.Empty(t, profiles.calls, "complete history needs no lookup")
}

func TestAnalyzeStockProfileFailure(t *testing.T) {
	provider := &stubProvider{name: "yahoo", data: map[string]*model.History{
		"VOD.L": history("VOD.L", "Vodafone Group", 70),
	}}
	profiles := &stubProfiles{err: errors.New("quota exceeded")}

	got, err := New(Options{}, nil, provider).WithProfiles(profiles).AnalyzeStock(context.Background(), "VOD.L")
	require.NoError(t, err)

	assert.Equal(t, "Vodafone Group", got.CompanyName)
	assert.Equal(t, "Unknown", got.Sector)
	assert.Zero(t, got.MarketCap)
	assert.Equal(t, []string{"VOD.L"}, profiles.calls)
}

func TestAnalyzeStockConvertsPence(t *testing.T) {
	h := history("LLOY.L", "Lloyds Banking Group", 50, 52, 54, 56, 58, 60)
	h.Currency = "GBp"
	provider := &stubProvider{name: "yahoo", data: map[string]*model.History{"LLOY.L": h}}

	got, err := New(Options{Indicators: map[string]bool{"Volume": true}}, nil, provider).
		AnalyzeStock(context.Background(), "LLOY.L")
	require.NoError(t, err)

	assert.InDelta(t, 0.60, got.Indicators.CurrentPrice, 1e-9)
	// percentage changes are unit free
	assert.InDelta(t, 20, got.Indicators.PriceChange5d, 1e-9)
}
