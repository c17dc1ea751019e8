package schema

import "time"

// Horizon is one named forward offset from an announcement date.
// EndOfYear horizons resolve to Dec 31 of the event year instead of a day offset.
type Horizon struct {
	Name       string
	OffsetDays int
	EndOfYear  bool
}

// Horizons is the fixed, ordered horizon table. The Evaluator, the result sinks
// and the console report all derive their field ordering from it, so adding a
// horizon here is the only change needed to extend the output schema.
var Horizons = []Horizon{
	{Name: "one_week_after", OffsetDays: 7},
	{Name: "one_month_after", OffsetDays: 30},
	{Name: "three_months_after", OffsetDays: 90},
	{Name: "six_months_after", OffsetDays: 180},
	{Name: "end_of_year", EndOfYear: true},
}

// Metric names measured at every horizon.
const (
	MetricPriceChange  = "price_change_%"
	MetricVolumeChange = "volume_change_%"
	MetricRSI          = "rsi"
)

// Metrics is the fixed, ordered metric set measured at every horizon.
var Metrics = []string{MetricPriceChange, MetricVolumeChange, MetricRSI}

// IdentityColumns are the leading per-event columns of every result row.
var IdentityColumns = []string{"year", "event", "date"}

// DateFor resolves the horizon's target date for the given announcement date and year.
func (h Horizon) DateFor(announcement time.Time, year int) time.Time {
	if h.EndOfYear {
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return announcement.AddDate(0, 0, h.OffsetDays)
}

// DeriveHorizons returns the target date for every configured horizon.
func DeriveHorizons(announcement time.Time, year int) map[string]time.Time {
	dates := make(map[string]time.Time, len(Horizons))
	for _, h := range Horizons {
		dates[h.Name] = h.DateFor(announcement, year)
	}
	return dates
}

// ColumnName builds the flat column name for a horizon/metric pair,
// e.g. "one_week_after_price_change_%".
func ColumnName(horizon, metric string) string {
	return horizon + "_" + metric
}

// MetricColumns returns all horizon/metric column names in horizon-major order.
func MetricColumns() []string {
	cols := make([]string, 0, len(Horizons)*len(Metrics))
	for _, h := range Horizons {
		for _, m := range Metrics {
			cols = append(cols, ColumnName(h.Name, m))
		}
	}
	return cols
}

// Columns returns the full result-row column order: identity columns first,
// then every metric column.
func Columns() []string {
	return append(append([]string{}, IdentityColumns...), MetricColumns()...)
}
