package report

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteSinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "revlex.db")

	sink, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer sink.Close()

	res := testResult()
	if err := sink.Write(res); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var total int
	if err := sink.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_summary WHERE run_id = ?`, res.RunID).Scan(&total); err != nil {
		t.Fatalf("count review_summary: %v", err)
	}
	if total != len(res.Reviews) {
		t.Errorf("review_summary rows = %d, want %d", total, len(res.Reviews))
	}

	var inLexicon int
	if err := sink.db.QueryRowContext(ctx,
		`SELECT in_lexicon FROM word_summary WHERE run_id = ? AND token = 'loved'`, res.RunID).Scan(&inLexicon); err != nil {
		t.Fatalf("query word_summary: %v", err)
	}
	if inLexicon != 1 {
		t.Error("loved should be flagged in_lexicon")
	}

	var score float64
	if err := sink.db.QueryRowContext(ctx,
		`SELECT polarity_score FROM word_summary WHERE run_id = ? AND token = 'loved'`, res.RunID).Scan(&score); err != nil {
		t.Fatalf("query polarity_score: %v", err)
	}
	if score != 3 {
		t.Errorf("polarity_score = %v, want 3", score)
	}

	// A word outside the lexicon keeps a NULL score.
	var nullScore *float64
	if err := sink.db.QueryRowContext(ctx,
		`SELECT polarity_score FROM word_summary WHERE run_id = ? AND token = 'book'`, res.RunID).Scan(&nullScore); err != nil {
		t.Fatalf("query book score: %v", err)
	}
	if nullScore != nil {
		t.Errorf("book polarity_score = %v, want NULL", *nullScore)
	}

	// Writing the same run twice must fail, not silently duplicate.
	if err := sink.Write(res); err == nil {
		t.Error("second write of the same run should fail on the primary key")
	}
}
