package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"TariffRadar/internal/model"
	"TariffRadar/internal/schema"
)

// FormatPreview renders the key columns of a run (year, event, date and each
// horizon's price-change percentage) as an aligned console table.
// Presentation only; the full schema goes to the sinks.
func FormatPreview(rows []model.ResultRow) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)

	header := []string{"year", "event", "date"}
	for _, h := range schema.Horizons {
		header = append(header, schema.ColumnName(h.Name, schema.MetricPriceChange))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range rows {
		cells := []string{fmt.Sprintf("%d", row.Year), truncate(row.Event, 48), row.Date}
		for _, h := range schema.Horizons {
			if v := row.Metric(h.Name, schema.MetricPriceChange); v != nil {
				cells = append(cells, fmt.Sprintf("%+.2f", *v))
			} else {
				cells = append(cells, "-")
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	w.Flush()
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
