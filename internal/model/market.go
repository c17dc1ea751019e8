package model

import (
	"sort"
	"time"
)

// DateLayout is the canonical calendar-date string form used throughout:
// config files, provider requests and result rows.
const DateLayout = "2006-01-02"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is an ordered daily price/volume history for one symbol over a
// requested range. Bars are sorted ascending by date, one bar per trading day.
// A Series may be empty; callers treat empty as "no data", not an error.
type Series struct {
	Symbol string
	Bars   []OHLCV
}

// Empty reports whether the series holds no bars.
func (s Series) Empty() bool { return len(s.Bars) == 0 }

// Sort orders the bars ascending by date.
func (s Series) Sort() {
	sort.Slice(s.Bars, func(i, j int) bool { return s.Bars[i].Date.Before(s.Bars[j].Date) })
}

// FirstAtOrAfter returns the index of the first bar whose date is at or after t.
// This is the shared "closest trading day" lookup used for both the baseline
// and every horizon. Returns ok=false when no such bar exists.
func (s Series) FirstAtOrAfter(t time.Time) (idx int, ok bool) {
	idx = sort.Search(len(s.Bars), func(i int) bool {
		return !s.Bars[i].Date.Before(t)
	})
	return idx, idx < len(s.Bars)
}

// Closes extracts the closing-price sequence from the series.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
