package analyzer

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"TariffRadar/internal/calculator"
	"TariffRadar/internal/model"
	"TariffRadar/internal/schema"
)

const (
	// lookbackDays of history before the announcement warm up the RSI window.
	lookbackDays = 30
	// windowDays caps how far past the announcement the series extends.
	windowDays = 365
	// recencyDays: events announced within this many days of now are too
	// recent for a meaningful post-announcement read.
	recencyDays = 30
	// rsiPeriod is the trailing window of the momentum indicator.
	rsiPeriod = 14
)

// SeriesFetcher retrieves a daily series for a symbol over a date range,
// degrading to an empty Series on failure. Satisfied by collector.Collector.
type SeriesFetcher interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) model.Series
}

// Evaluator measures one instrument's reaction to announcement events at the
// configured horizons. It never returns an error: every failure path degrades
// to the all-null placeholder row, so one event can never abort the run.
type Evaluator struct {
	Fetcher SeriesFetcher
	Logger  *logrus.Logger

	// now is replaceable in tests for the recency guard and window cap.
	now func() time.Time
}

// NewEvaluator creates an Evaluator over the given fetcher.
func NewEvaluator(fetcher SeriesFetcher, logger *logrus.Logger) *Evaluator {
	return &Evaluator{Fetcher: fetcher, Logger: logger, now: time.Now}
}

// Evaluate produces the result row for one event. The series is fetched fresh
// for the event's own range and discarded afterwards; nothing is cached
// across events.
func (e *Evaluator) Evaluate(ctx context.Context, ev model.Event, symbol string) (row model.ResultRow) {
	row = model.EmptyResultRow(ev)

	// Any unexpected fault (malformed series, arithmetic issue) is contained
	// here; the contract is exactly one row per event.
	defer func() {
		if r := recover(); r != nil {
			e.Logger.WithFields(logrus.Fields{
				"event": ev.Event,
				"date":  ev.Date,
				"panic": r,
			}).Error("evaluation failed, emitting empty result")
			row = model.EmptyResultRow(ev)
		}
	}()

	announcement, err := ev.AnnouncementDate()
	if err != nil {
		e.Logger.WithError(err).WithField("event", ev.Event).Error("invalid event date")
		return row
	}

	now := e.now()
	if announcement.After(now.AddDate(0, 0, -recencyDays)) {
		e.Logger.WithFields(logrus.Fields{
			"event": ev.Event,
			"date":  ev.Date,
		}).Info("event too recent, skipping")
		return row
	}

	lookbackStart := announcement.AddDate(0, 0, -lookbackDays)
	windowEnd := announcement.AddDate(0, 0, windowDays)
	if windowEnd.After(now) {
		windowEnd = now
	}

	series := e.Fetcher.Fetch(ctx, symbol, lookbackStart, windowEnd)
	if series.Empty() {
		e.Logger.WithFields(logrus.Fields{
			"event":  ev.Event,
			"date":   ev.Date,
			"symbol": symbol,
		}).Warn("no data available for event")
		return row
	}

	rsi := calculator.RSISeries(series.Closes(), rsiPeriod)

	baseIdx, ok := series.FirstAtOrAfter(announcement)
	if !ok {
		e.Logger.WithFields(logrus.Fields{
			"event": ev.Event,
			"date":  ev.Date,
		}).Warn("no trading day at or after announcement")
		return row
	}
	baseline := series.Bars[baseIdx]
	if baseline.Close == 0 || baseline.Volume == 0 {
		e.Logger.WithFields(logrus.Fields{
			"event": ev.Event,
			"date":  ev.Date,
		}).Warn("zero baseline price or volume")
		return row
	}

	for _, h := range schema.Horizons {
		target := h.DateFor(announcement, ev.Year)
		idx, ok := series.FirstAtOrAfter(target)
		if !ok {
			continue // horizon beyond available data, metrics stay null
		}
		day := series.Bars[idx]

		priceChange := (day.Close - baseline.Close) / baseline.Close * 100
		volumeChange := (day.Volume - baseline.Volume) / baseline.Volume * 100
		row.Metrics[schema.ColumnName(h.Name, schema.MetricPriceChange)] = &priceChange
		row.Metrics[schema.ColumnName(h.Name, schema.MetricVolumeChange)] = &volumeChange
		if v := rsi[idx]; !math.IsNaN(v) {
			val := v
			row.Metrics[schema.ColumnName(h.Name, schema.MetricRSI)] = &val
		}
	}
	return row
}
