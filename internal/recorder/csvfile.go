package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"TariffRadar/internal/model"
	"TariffRadar/internal/schema"
)

// CSVRecorder writes results to a header+rows flat file. The file is
// rewritten in full on every save. Null metrics become empty cells.
type CSVRecorder struct {
	Path   string
	logger *logrus.Logger
}

// NewCSVRecorder creates a CSV recorder targeting the given path.
func NewCSVRecorder(path string, logger *logrus.Logger) *CSVRecorder {
	return &CSVRecorder{Path: path, logger: logger}
}

func (r *CSVRecorder) SaveResults(rows []model.ResultRow) error {
	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(schema.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	metricCols := schema.MetricColumns()
	for _, row := range rows {
		rec := make([]string, 0, 3+len(metricCols))
		rec = append(rec, strconv.Itoa(row.Year), row.Event, row.Date)
		for _, c := range metricCols {
			if v := row.Metrics[c]; v != nil {
				rec = append(rec, strconv.FormatFloat(*v, 'f', -1, 64))
			} else {
				rec = append(rec, "")
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %q: %w", row.Event, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	r.logger.WithFields(logrus.Fields{"path": r.Path, "rows": len(rows)}).Info("results written to csv")
	return nil
}

func (r *CSVRecorder) Close() error { return nil }
