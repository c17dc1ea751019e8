package recorder

import "TariffRadar/internal/model"

// NoopRecorder is a no-op implementation used when a sink is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) SaveResults(_ []model.ResultRow) error { return nil }
func (n *NoopRecorder) Close() error                          { return nil }
