package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"TariffRadar/internal/model"
	"TariffRadar/internal/schema"
)

// SQLiteRecorder persists results to a SQLite table with replace-on-write
// semantics: each save drops and recreates the table, so the table always
// reflects exactly one run.
type SQLiteRecorder struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database.
func NewSQLiteRecorder(dbPath, table string, logger *logrus.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	logger.WithFields(logrus.Fields{"path": dbPath, "table": table}).Info("sqlite recorder opened")
	return &SQLiteRecorder{db: db, table: table, logger: logger}, nil
}

// quoteIdent quotes a SQLite identifier; column names contain "%".
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (r *SQLiteRecorder) SaveResults(rows []model.ResultRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cols := schema.Columns()
	defs := make([]string, 0, len(cols))
	defs = append(defs,
		quoteIdent("year")+" INTEGER",
		quoteIdent("event")+" TEXT",
		quoteIdent("date")+" TEXT",
	)
	for _, c := range schema.MetricColumns() {
		defs = append(defs, quoteIdent(c)+" REAL")
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + quoteIdent(r.table)); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(r.table), strings.Join(defs, ", "))
	if _, err := tx.Exec(ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(r.table), strings.Join(quoted, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		args := make([]interface{}, 0, len(cols))
		args = append(args, row.Year, row.Event, row.Date)
		for _, c := range schema.MetricColumns() {
			if v := row.Metrics[c]; v != nil {
				args = append(args, *v)
			} else {
				args = append(args, nil)
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %q: %w", row.Event, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.WithFields(logrus.Fields{"table": r.table, "rows": len(rows)}).Info("results written to sqlite")
	return nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
