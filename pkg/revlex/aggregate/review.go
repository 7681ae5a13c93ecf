// Package aggregate turns the token stream into the two summary tables:
// per-review sentiment statistics and per-word usage statistics.
//
// Both aggregators are mergeable: partial aggregators built from an
// arbitrary partition of the token stream merge into the same result as
// a single pass, so callers may fan work out across workers without
// affecting the output.
package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/revlex/pkg/revlex/ingest"
	"github.com/cognicore/revlex/pkg/revlex/lexicon"
)

// ReviewSummary is the per-review sentiment row. Only reviews with at
// least one lexicon-matched token produce a row: a review with no
// sentiment-bearing words has no sentiment score, which is not the same
// as a neutral score of zero.
type ReviewSummary struct {
	ReviewID int64   `json:"review_id"`
	Rating   int     `json:"rating"`
	Mean     float64 `json:"mean_sentiment"`
	Median   float64 `json:"median_sentiment"`
}

type reviewGroup struct {
	rating int
	scores []float64
}

// ReviewAggregator groups lexicon-matched token scores by review.
type ReviewAggregator struct {
	groups map[int64]*reviewGroup
}

// NewReviewAggregator creates an empty review aggregator.
func NewReviewAggregator() *ReviewAggregator {
	return &ReviewAggregator{groups: make(map[int64]*reviewGroup)}
}

// Add records one token occurrence together with its lexicon score.
// Callers must only pass tokens that matched the lexicon; unmatched
// tokens are excluded from the join entirely, not averaged in as zero.
func (a *ReviewAggregator) Add(tok ingest.Token, score float64) {
	g := a.groups[tok.ReviewID]
	if g == nil {
		g = &reviewGroup{rating: tok.Rating}
		a.groups[tok.ReviewID] = g
	}
	g.scores = append(g.scores, score)
}

// AddMatched joins a token against the lexicon and records it when the
// word is present. It reports whether the token matched.
func (a *ReviewAggregator) AddMatched(tok ingest.Token, lex *lexicon.Lexicon) bool {
	score, ok := lex.Score(tok.Word)
	if !ok {
		return false
	}
	a.Add(tok, score)
	return true
}

// Merge folds another aggregator into this one. The other aggregator
// must not be used afterwards.
func (a *ReviewAggregator) Merge(other *ReviewAggregator) {
	for id, og := range other.groups {
		g := a.groups[id]
		if g == nil {
			a.groups[id] = og
			continue
		}
		g.scores = append(g.scores, og.scores...)
	}
}

// Summaries computes mean and median sentiment per review, sorted by
// review ID. Median is reported alongside mean because the two tell
// different stories on skewed score distributions.
func (a *ReviewAggregator) Summaries() []ReviewSummary {
	out := make([]ReviewSummary, 0, len(a.groups))
	for id, g := range a.groups {
		if len(g.scores) == 0 {
			continue
		}
		sorted := make([]float64, len(g.scores))
		copy(sorted, g.scores)
		sort.Float64s(sorted)
		out = append(out, ReviewSummary{
			ReviewID: id,
			Rating:   g.rating,
			Mean:     stat.Mean(sorted, nil),
			Median:   median(sorted),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReviewID < out[j].ReviewID })
	return out
}

// median returns the conventional median of a sorted, non-empty slice:
// the middle element for odd counts, the midpoint of the two middle
// elements for even counts.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
