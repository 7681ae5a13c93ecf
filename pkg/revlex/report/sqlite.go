package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/revlex/pkg/revlex"
)

// SQLiteSink writes run output to a SQLite database, one run per
// transaction keyed by the run's ULID. It is purely an output
// serialization of finished runs; the pipeline never reads from it.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the output database with WAL mode
// enabled and initializes the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteSink{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	total_in INTEGER NOT NULL,
	total_kept INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS review_summary (
	run_id TEXT NOT NULL,
	review_id INTEGER NOT NULL,
	rating INTEGER NOT NULL,
	mean_sentiment REAL NOT NULL,
	median_sentiment REAL NOT NULL,
	PRIMARY KEY(run_id, review_id),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS word_summary (
	run_id TEXT NOT NULL,
	token TEXT NOT NULL,
	review_support INTEGER NOT NULL,
	total_uses INTEGER NOT NULL,
	mean_rating REAL NOT NULL,
	polarity_score REAL,
	in_lexicon INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY(run_id, token),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_word_summary_token ON word_summary(token);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Write stores one run atomically.
func (s *SQLiteSink) Write(res revlex.Result) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs(id, created_at, total_in, total_kept) VALUES(?, ?, ?, ?)`,
		res.RunID, time.Now().UTC().Format(time.RFC3339), res.TotalIn, res.TotalKept)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	reviewStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO review_summary(run_id, review_id, rating, mean_sentiment, median_sentiment)
		 VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer reviewStmt.Close()
	for _, r := range res.Reviews {
		if _, err := reviewStmt.ExecContext(ctx, res.RunID, r.ReviewID, r.Rating, r.Mean, r.Median); err != nil {
			return fmt.Errorf("insert review summary: %w", err)
		}
	}

	scores := make(map[string]float64, len(res.ScoredWords))
	for _, w := range res.ScoredWords {
		scores[w.Word] = w.Score
	}

	wordStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO word_summary(run_id, token, review_support, total_uses, mean_rating, polarity_score, in_lexicon)
		 VALUES(?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer wordStmt.Close()
	for _, w := range res.Words {
		var score sql.NullFloat64
		inLexicon := 0
		if v, ok := scores[w.Word]; ok {
			score = sql.NullFloat64{Float64: v, Valid: true}
			inLexicon = 1
		}
		if _, err := wordStmt.ExecContext(ctx, res.RunID, w.Word, w.ReviewSupport, w.TotalUses, w.MeanRating, score, inLexicon); err != nil {
			return fmt.Errorf("insert word summary: %w", err)
		}
	}

	return tx.Commit()
}
