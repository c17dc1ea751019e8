package model

import "TariffRadar/internal/schema"

// ResultRow is the fixed-schema output record for one event. Metrics holds
// exactly one entry per horizon/metric column; a nil value is an explicit
// null (data unavailable), never an omitted field. Rows are built once per
// event and not mutated afterwards.
type ResultRow struct {
	Year    int
	Event   string
	Date    string
	Metrics map[string]*float64
}

// EmptyResultRow builds the all-null placeholder row for an event. Used for
// too-recent events, exhausted fetches and any recovered evaluation failure.
func EmptyResultRow(ev Event) ResultRow {
	metrics := make(map[string]*float64, len(schema.Horizons)*len(schema.Metrics))
	for _, col := range schema.MetricColumns() {
		metrics[col] = nil
	}
	return ResultRow{
		Year:    ev.Year,
		Event:   ev.Event,
		Date:    ev.Date,
		Metrics: metrics,
	}
}

// Metric returns the value for a horizon/metric column, nil when null.
func (r ResultRow) Metric(horizon, metric string) *float64 {
	return r.Metrics[schema.ColumnName(horizon, metric)]
}
