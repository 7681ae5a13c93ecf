package aggregate

import (
	"testing"

	"github.com/cognicore/revlex/pkg/revlex/ingest"
)

func TestWordSummariesSupportInvariant(t *testing.T) {
	agg := NewWordAggregator()
	stream := []ingest.Token{
		tok(1, 5, "book"), tok(2, 1, "book"), tok(3, 3, "book"),
		tok(1, 5, "loved"), tok(1, 5, "loved"),
		tok(2, 1, "boring"),
	}
	for _, tk := range stream {
		agg.Add(tk)
	}

	rows := agg.Summaries(3)
	if len(rows) != 1 || rows[0].Word != "book" {
		t.Fatalf("rows = %v, want only book at support >= 3", rows)
	}
	for _, row := range rows {
		if row.ReviewSupport < 3 {
			t.Errorf("%s: support %d below threshold", row.Word, row.ReviewSupport)
		}
		if row.TotalUses < row.ReviewSupport {
			t.Errorf("%s: total_uses %d < review_support %d", row.Word, row.TotalUses, row.ReviewSupport)
		}
	}
}

func TestWordSummariesMeanRating(t *testing.T) {
	agg := NewWordAggregator()
	for _, tk := range []ingest.Token{
		tok(1, 5, "book"), tok(2, 1, "book"), tok(3, 3, "book"),
	} {
		agg.Add(tk)
	}

	rows := agg.Summaries(1)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.ReviewSupport != 3 || row.TotalUses != 3 {
		t.Errorf("book: support=%d uses=%d, want 3 and 3", row.ReviewSupport, row.TotalUses)
	}
	if !approx(row.MeanRating, 3.0) {
		t.Errorf("book: mean_rating = %v, want 3.0", row.MeanRating)
	}
}

func TestWordMeanRatingIsOccurrenceWeighted(t *testing.T) {
	agg := NewWordAggregator()
	// "great" appears 3 times in one 5-star review and once in a 1-star
	// review: the occurrence-weighted mean is (5+5+5+1)/4, not (5+1)/2.
	for _, tk := range []ingest.Token{
		tok(1, 5, "great"), tok(1, 5, "great"), tok(1, 5, "great"),
		tok(2, 1, "great"),
	} {
		agg.Add(tk)
	}

	rows := agg.Summaries(1)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !approx(rows[0].MeanRating, 4.0) {
		t.Errorf("mean_rating = %v, want 4.0 (occurrence-weighted)", rows[0].MeanRating)
	}
	if rows[0].ReviewSupport != 2 || rows[0].TotalUses != 4 {
		t.Errorf("support=%d uses=%d, want 2 and 4", rows[0].ReviewSupport, rows[0].TotalUses)
	}
}

func TestJoinLexiconExcludesAbsentWords(t *testing.T) {
	lex := testLexicon()
	agg := NewWordAggregator()
	for _, tk := range []ingest.Token{
		tok(1, 5, "book"), tok(2, 1, "book"), tok(3, 3, "book"),
		tok(1, 5, "loved"),
	} {
		agg.Add(tk)
	}

	rows := agg.Summaries(1)
	joined := JoinLexicon(rows, lex)

	for _, row := range joined {
		if row.Word == "book" {
			t.Error("book is not in the lexicon and must not appear in the joined view")
		}
	}
	if len(joined) != 1 || joined[0].Word != "loved" || joined[0].Score != 3 {
		t.Errorf("joined = %v, want only loved with score 3", joined)
	}

	// The unjoined summary still retains absent words.
	found := false
	for _, row := range rows {
		if row.Word == "book" {
			found = true
		}
	}
	if !found {
		t.Error("plain word summary must retain words absent from the lexicon")
	}
}

func TestWordMergeOrderIndependence(t *testing.T) {
	stream := []ingest.Token{
		tok(1, 5, "book"), tok(2, 1, "book"), tok(3, 3, "book"),
		tok(1, 5, "loved"), tok(1, 5, "loved"), tok(2, 1, "boring"),
		tok(3, 3, "book"), tok(2, 1, "loved"),
	}

	single := NewWordAggregator()
	for _, tk := range stream {
		single.Add(tk)
	}
	want := single.Summaries(1)

	chunks := make([]*WordAggregator, 4)
	for i := range chunks {
		chunks[i] = NewWordAggregator()
	}
	for i, tk := range stream {
		chunks[i%4].Add(tk)
	}

	merged := NewWordAggregator()
	for _, i := range []int{3, 1, 0, 2} {
		merged.Merge(chunks[i])
	}
	got := merged.Summaries(1)

	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: merged %+v != single-pass %+v", i, got[i], want[i])
		}
	}
}
