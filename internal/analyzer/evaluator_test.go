package analyzer

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"TariffRadar/internal/model"
	"TariffRadar/internal/schema"
)

type stubFetcher struct {
	series model.Series
	calls  int
}

func (s *stubFetcher) Fetch(_ context.Context, symbol string, _, _ time.Time) model.Series {
	s.calls++
	out := s.series
	out.Symbol = symbol
	return out
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// mkSeries builds consecutive calendar-day bars with gently rising close and volume.
func mkSeries(start string, days int) model.Series {
	bars := make([]model.OHLCV, days)
	d := day(start)
	for i := 0; i < days; i++ {
		c := 100 + float64(i)*0.5
		bars[i] = model.OHLCV{
			Date:   d.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000 + float64(i)*1000,
		}
	}
	return model.Series{Symbol: "SPY", Bars: bars}
}

func newTestEvaluator(fetcher SeriesFetcher, now string) *Evaluator {
	e := NewEvaluator(fetcher, testLogger())
	fixed := day(now)
	e.now = func() time.Time { return fixed }
	return e
}

func assertAllNull(t *testing.T, row model.ResultRow) {
	t.Helper()
	if len(row.Metrics) != len(schema.Horizons)*len(schema.Metrics) {
		t.Fatalf("expected %d metric fields, got %d", len(schema.Horizons)*len(schema.Metrics), len(row.Metrics))
	}
	for _, col := range schema.MetricColumns() {
		v, present := row.Metrics[col]
		if !present {
			t.Errorf("metric %q missing from row", col)
		}
		if v != nil {
			t.Errorf("metric %q: expected null, got %f", col, *v)
		}
	}
}

func TestEvaluate_RecencyGuardSkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{series: mkSeries("2025-11-01", 60)}
	e := newTestEvaluator(fetcher, "2026-01-01")

	ev := model.Event{Year: 2025, Event: "recent", Date: "2025-12-20"}
	row := e.Evaluate(context.Background(), ev, "SPY")

	if fetcher.calls != 0 {
		t.Errorf("expected no fetch for too-recent event, got %d calls", fetcher.calls)
	}
	assertAllNull(t, row)
	if row.Year != 2025 || row.Event != "recent" || row.Date != "2025-12-20" {
		t.Errorf("identity fields not copied: %+v", row)
	}
}

func TestEvaluate_EmptySeriesYieldsPlaceholder(t *testing.T) {
	fetcher := &stubFetcher{}
	e := newTestEvaluator(fetcher, "2026-01-01")

	row := e.Evaluate(context.Background(), model.Event{Year: 2018, Event: "x", Date: "2018-03-01"}, "SPY")
	if fetcher.calls != 1 {
		t.Fatalf("expected one fetch, got %d", fetcher.calls)
	}
	assertAllNull(t, row)
}

func TestEvaluate_BaselineClosestAtOrAfter(t *testing.T) {
	// No bar on the announcement date; first bar two days later becomes the baseline.
	series := mkSeries("2018-03-03", 200)
	fetcher := &stubFetcher{series: series}
	e := newTestEvaluator(fetcher, "2026-01-01")

	row := e.Evaluate(context.Background(), model.Event{Year: 2018, Event: "x", Date: "2018-03-01"}, "SPY")

	baseline := series.Bars[0] // 2018-03-03
	// one_week target 2018-03-08 is series index 5.
	horizonBar := series.Bars[5]
	want := (horizonBar.Close - baseline.Close) / baseline.Close * 100

	got := row.Metric("one_week_after", schema.MetricPriceChange)
	if got == nil {
		t.Fatal("expected numeric one-week price change")
	}
	if *got != want {
		t.Errorf("one-week price change: expected %f, got %f", want, *got)
	}

	wantVol := (horizonBar.Volume - baseline.Volume) / baseline.Volume * 100
	gotVol := row.Metric("one_week_after", schema.MetricVolumeChange)
	if gotVol == nil || *gotVol != wantVol {
		t.Errorf("one-week volume change: expected %f, got %v", wantVol, gotVol)
	}

	// Index 5 is inside the RSI warm-up window, so the indicator is null
	// while the deltas are numeric.
	if row.Metric("one_week_after", schema.MetricRSI) != nil {
		t.Error("expected null RSI inside warm-up window")
	}
}

func TestEvaluate_HorizonBeyondData(t *testing.T) {
	// Series covers lookback through mid-April only.
	fetcher := &stubFetcher{series: mkSeries("2018-01-30", 76)} // ends 2018-04-15
	e := newTestEvaluator(fetcher, "2026-01-01")

	row := e.Evaluate(context.Background(), model.Event{Year: 2018, Event: "x", Date: "2018-03-01"}, "SPY")

	for _, h := range []string{"one_week_after", "one_month_after"} {
		if row.Metric(h, schema.MetricPriceChange) == nil {
			t.Errorf("%s: expected numeric price change", h)
		}
		if row.Metric(h, schema.MetricRSI) == nil {
			t.Errorf("%s: expected numeric RSI", h)
		}
	}
	for _, h := range []string{"three_months_after", "six_months_after", "end_of_year"} {
		for _, m := range schema.Metrics {
			if row.Metric(h, m) != nil {
				t.Errorf("%s/%s: expected null beyond available data", h, m)
			}
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	fetcher := &stubFetcher{series: mkSeries("2018-01-30", 400)}
	e := newTestEvaluator(fetcher, "2026-01-01")
	ev := model.Event{Year: 2018, Event: "x", Date: "2018-03-01"}

	first := e.Evaluate(context.Background(), ev, "SPY")
	second := e.Evaluate(context.Background(), ev, "SPY")

	for _, col := range schema.MetricColumns() {
		a, b := first.Metrics[col], second.Metrics[col]
		switch {
		case a == nil && b == nil:
		case a == nil || b == nil:
			t.Errorf("%s: nullability differs between runs", col)
		case *a != *b:
			t.Errorf("%s: %f != %f between runs", col, *a, *b)
		}
	}
}

func TestEvaluate_FullYearAllNumeric(t *testing.T) {
	fetcher := &stubFetcher{series: mkSeries("2018-01-30", 400)}
	e := newTestEvaluator(fetcher, "2026-01-01")

	row := e.Evaluate(context.Background(), model.Event{Year: 2018, Event: "x", Date: "2018-03-01"}, "SPY")
	for _, col := range schema.MetricColumns() {
		if row.Metrics[col] == nil {
			t.Errorf("%s: expected numeric value with full-year data", col)
		}
	}
}

func TestEvaluate_ZeroBaselineDegrades(t *testing.T) {
	series := mkSeries("2018-03-01", 100)
	series.Bars[0].Volume = 0
	fetcher := &stubFetcher{series: series}
	e := newTestEvaluator(fetcher, "2026-01-01")

	row := e.Evaluate(context.Background(), model.Event{Year: 2018, Event: "x", Date: "2018-03-01"}, "SPY")
	assertAllNull(t, row)
}

func TestEvaluate_NoBarAtOrAfterAnnouncement(t *testing.T) {
	// Series entirely before the announcement.
	fetcher := &stubFetcher{series: mkSeries("2018-01-01", 30)}
	e := newTestEvaluator(fetcher, "2026-01-01")

	row := e.Evaluate(context.Background(), model.Event{Year: 2018, Event: "x", Date: "2018-03-01"}, "SPY")
	assertAllNull(t, row)
}

func TestEvaluate_InvalidDateDegrades(t *testing.T) {
	fetcher := &stubFetcher{series: mkSeries("2018-01-30", 100)}
	e := newTestEvaluator(fetcher, "2026-01-01")

	row := e.Evaluate(context.Background(), model.Event{Year: 2018, Event: "x", Date: "03/01/2018"}, "SPY")
	if fetcher.calls != 0 {
		t.Errorf("expected no fetch for unparseable date, got %d calls", fetcher.calls)
	}
	assertAllNull(t, row)
}
