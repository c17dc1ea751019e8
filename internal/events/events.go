package events

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"TariffRadar/internal/model"
)

// defaultCatalog holds the built-in tariff event list, used when no events
// file is configured or the configured file does not exist.
var defaultCatalog = []model.Event{
	{
		Year:    2018,
		Event:   "Steel and Aluminum Tariffs (25% on Steel, 10% on Aluminum)",
		Date:    "2018-03-01",
		Country: "Multiple Countries (Global, with some exemptions later)",
	},
	{
		Year:    2018,
		Event:   "China Tariffs Phase 1 ($34 Billion on Goods)",
		Date:    "2018-07-06",
		Country: "China",
	},
	{
		Year:    2018,
		Event:   "China Tariffs Phase 2 ($200 Billion Additional Goods)",
		Date:    "2018-09-17",
		Country: "China",
	},
	{
		Year:    2019,
		Event:   "China Tariff Increase (25% on $200 Billion Goods)",
		Date:    "2019-05-10",
		Country: "China",
	},
	{
		Year:    2025,
		Event:   "Trump 2025 Proposed Tariffs (Potential 10-20% on Imports)",
		Date:    "2025-03-03",
		Country: "Canada, Mexico, and China",
	},
}

// Load reads the event catalog from a YAML file. A missing file falls back to
// the built-in catalog; a present but malformed file is an error. Every
// event's date must parse in the canonical layout.
func Load(path string) ([]model.Event, error) {
	evs := defaultCatalog
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// keep defaults
		case err != nil:
			return nil, fmt.Errorf("read events file: %w", err)
		default:
			var parsed []model.Event
			if err := yaml.Unmarshal(data, &parsed); err != nil {
				return nil, fmt.Errorf("parse events file: %w", err)
			}
			if len(parsed) == 0 {
				return nil, fmt.Errorf("events file %s contains no events", path)
			}
			evs = parsed
		}
	}

	for _, ev := range evs {
		if _, err := ev.AnnouncementDate(); err != nil {
			return nil, err
		}
		if ev.Year <= 0 {
			return nil, fmt.Errorf("event %q: missing year", ev.Event)
		}
	}
	return evs, nil
}

// Defaults returns a copy of the built-in catalog.
func Defaults() []model.Event {
	out := make([]model.Event, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}
