package collector

import (
	"context"
	"time"

	"TariffRadar/internal/model"
)

// Fetcher defines the interface for a single daily-bar provider.
// Implementations receive the range as calendar dates and return bars in any
// order; the Collector owns sorting and fallback.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars  []model.OHLCV
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, _, _ time.Time) ([]model.OHLCV, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars, nil
}
