package collector

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"TariffRadar/internal/model"
)

// DefaultMaxAttempts bounds the retry loop when the config does not override it.
const DefaultMaxAttempts = 3

// Collector retrieves a daily series by walking an ordered provider chain with
// bounded retries. It never returns an error: exhausted attempts degrade to an
// empty Series, which callers treat as a legitimate "no data" outcome.
type Collector struct {
	Providers   []Fetcher
	MaxAttempts int
	Logger      *logrus.Logger

	// wait is the backoff sleep, replaceable in tests.
	wait func(ctx context.Context, d time.Duration)
}

// NewCollector creates a Collector over the given providers, tried in order.
func NewCollector(logger *logrus.Logger, maxAttempts int, providers ...Fetcher) *Collector {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Collector{
		Providers:   providers,
		MaxAttempts: maxAttempts,
		Logger:      logger,
		wait:        sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Fetch retrieves the daily series for symbol over [start, end]. Each attempt
// tries every provider in order and takes the first non-empty response,
// sorted ascending by date. Provider errors and empty responses both count as
// a failed attempt; attempts are separated by 2^attempt seconds of backoff,
// with no delay after the final one.
func (c *Collector) Fetch(ctx context.Context, symbol string, start, end time.Time) model.Series {
	series := model.Series{Symbol: symbol}

	for attempt := 0; attempt < c.MaxAttempts; attempt++ {
		for _, p := range c.Providers {
			bars, err := p.FetchDailyBars(ctx, symbol, start, end)
			if err != nil {
				c.Logger.WithError(err).WithFields(logrus.Fields{
					"provider": p.Name(),
					"symbol":   symbol,
					"attempt":  attempt + 1,
				}).Warn("provider fetch failed")
				continue
			}
			if len(bars) == 0 {
				c.Logger.WithFields(logrus.Fields{
					"provider": p.Name(),
					"symbol":   symbol,
					"attempt":  attempt + 1,
				}).Warn("provider returned no data")
				continue
			}
			series.Bars = bars
			series.Sort()
			c.Logger.WithFields(logrus.Fields{
				"provider": p.Name(),
				"symbol":   symbol,
				"bars":     len(bars),
			}).Info("fetched daily series")
			return series
		}

		if attempt < c.MaxAttempts-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			c.Logger.WithFields(logrus.Fields{
				"symbol":  symbol,
				"attempt": attempt + 1,
				"backoff": backoff,
			}).Warn("all providers failed, retrying")
			c.wait(ctx, backoff)
		}
	}

	c.Logger.WithFields(logrus.Fields{
		"symbol":   symbol,
		"attempts": c.MaxAttempts,
	}).Warn("fetch exhausted, returning empty series")
	return series
}
