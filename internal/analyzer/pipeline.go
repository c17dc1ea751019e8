package analyzer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"TariffRadar/internal/model"
	"TariffRadar/internal/recorder"
)

// Pipeline runs the full analysis: one row per event, evaluated sequentially
// in input order, then handed to every configured sink as a single
// whole-collection write.
type Pipeline struct {
	Evaluator *Evaluator
	Events    []model.Event
	Symbol    string
	Recorders []recorder.Recorder
	Logger    *logrus.Logger
}

// Run evaluates all events and persists the ordered result collection.
// Evaluation itself has no fatal path; only sink writes can fail.
func (p *Pipeline) Run(ctx context.Context) ([]model.ResultRow, error) {
	p.Logger.WithFields(logrus.Fields{
		"events": len(p.Events),
		"symbol": p.Symbol,
	}).Info("starting event impact analysis")

	rows := make([]model.ResultRow, 0, len(p.Events))
	for _, ev := range p.Events {
		rows = append(rows, p.Evaluator.Evaluate(ctx, ev, p.Symbol))
	}

	for _, rec := range p.Recorders {
		if err := rec.SaveResults(rows); err != nil {
			return rows, fmt.Errorf("save results: %w", err)
		}
	}

	p.Logger.WithField("rows", len(rows)).Info("analysis complete")
	return rows, nil
}
