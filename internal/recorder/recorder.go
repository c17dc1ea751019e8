package recorder

import "TariffRadar/internal/model"

// Recorder persists the final ordered result collection. Implementations
// replace any previous run's output in full; results are never appended
// incrementally.
type Recorder interface {
	SaveResults(rows []model.ResultRow) error
	Close() error
}
