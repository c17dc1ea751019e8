package recorder

import (
	"testing"
)

func TestSQLiteRecorder_ReplaceOnWrite(t *testing.T) {
	r, err := NewSQLiteRecorder(":memory:", "sp500", testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	rows := sampleRows()
	if err := r.SaveResults(rows); err != nil {
		t.Fatalf("save: %v", err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM "sp500"`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(rows) {
		t.Errorf("expected %d rows, got %d", len(rows), count)
	}

	var v *float64
	err = r.db.QueryRow(`SELECT "one_week_after_price_change_%" FROM "sp500" WHERE "event" = ?`,
		"steel tariffs").Scan(&v)
	if err != nil {
		t.Fatalf("select metric: %v", err)
	}
	if v == nil || *v != 3.25 {
		t.Errorf("expected 3.25, got %v", v)
	}

	var null *float64
	err = r.db.QueryRow(`SELECT "end_of_year_rsi" FROM "sp500" WHERE "event" = ?`,
		"proposed tariffs").Scan(&null)
	if err != nil {
		t.Fatalf("select null metric: %v", err)
	}
	if null != nil {
		t.Errorf("expected NULL, got %v", *null)
	}

	// A second save replaces the table rather than appending.
	if err := r.SaveResults(rows[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM "sp500"`).Scan(&count); err != nil {
		t.Fatalf("recount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after replace, got %d", count)
	}
}
