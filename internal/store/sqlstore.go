package store

import (
	"fmt"

	"github.com/alexandru-savinov/cbmbench/internal/apperrors"
	"github.com/alexandru-savinov/cbmbench/internal/engine"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS results (
	run_id                 TEXT NOT NULL,
	question_id            TEXT NOT NULL,
	dataset                TEXT NOT NULL,
	vendor                 TEXT NOT NULL,
	model                  TEXT NOT NULL,
	variant                TEXT NOT NULL,
	temperature            REAL NOT NULL,
	iteration              INTEGER NOT NULL,
	answer                 TEXT NOT NULL,
	confidence_raw         REAL NOT NULL,
	confidence_normalized  REAL NOT NULL,
	score                  REAL,
	correct_answer         TEXT,
	is_correct             BOOLEAN,
	parse_method           TEXT NOT NULL,
	timestamp              TEXT NOT NULL,
	processing_ms          INTEGER NOT NULL,
	raw_response           TEXT
);
CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
`

// SQLStore persists results to a SQL database via sqlx, using
// modernc.org/sqlite's pure-Go driver so the store needs no cgo toolchain.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore opens (and, if needed, migrates) a SQLite database at
// dataSourceName, e.g. "file:results.db?cache=shared".
func NewSQLStore(dataSourceName string) (*SQLStore, error) {
	db, err := sqlx.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, apperrors.HandleError(err, "failed to open results database")
	}
	if _, err := db.Exec(resultsSchema); err != nil {
		_ = db.Close()
		return nil, apperrors.HandleError(err, "failed to migrate results schema")
	}
	return &SQLStore{db: db}, nil
}

// Save inserts results tagged with runID inside a single transaction,
// replacing any prior rows for that run.
func (s *SQLStore) Save(runID string, results []engine.Result) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return apperrors.HandleError(err, "failed to begin results transaction")
	}

	if _, err := tx.Exec("DELETE FROM results WHERE run_id = ?", runID); err != nil {
		_ = tx.Rollback()
		return apperrors.HandleError(err, fmt.Sprintf("failed to clear prior results for run %s", runID))
	}

	const insert = `
		INSERT INTO results (
			run_id, question_id, dataset, vendor, model, variant, temperature,
			iteration, answer, confidence_raw, confidence_normalized, score,
			correct_answer, is_correct, parse_method, timestamp, processing_ms,
			raw_response
		) VALUES (
			:run_id, :question_id, :dataset, :vendor, :model, :variant, :temperature,
			:iteration, :answer, :confidence_raw, :confidence_normalized, :score,
			:correct_answer, :is_correct, :parse_method, :timestamp, :processing_ms,
			:raw_response
		)`

	for _, r := range results {
		row := resultRow{Result: r, RunID: runID}
		if _, err := tx.NamedExec(insert, row); err != nil {
			_ = tx.Rollback()
			return apperrors.HandleError(err, fmt.Sprintf("failed to insert result for question %s", r.QuestionID))
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.HandleError(err, "failed to commit results transaction")
	}
	return nil
}

// Load reads back every row stored under runID.
func (s *SQLStore) Load(runID string) ([]engine.Result, error) {
	var rows []resultRow
	err := s.db.Select(&rows, "SELECT * FROM results WHERE run_id = ? ORDER BY rowid", runID)
	if err != nil {
		return nil, apperrors.HandleError(err, fmt.Sprintf("failed to load results for run %s", runID))
	}
	results := make([]engine.Result, len(rows))
	for i, row := range rows {
		results[i] = row.Result
	}
	return results, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// resultRow embeds engine.Result purely to add the run_id column sqlx
// needs for NamedExec/Select without engine.Result itself carrying a
// store-specific field.
type resultRow struct {
	engine.Result
	RunID string `db:"run_id"`
}
