package aggregate

import (
	"sort"

	"github.com/cognicore/revlex/pkg/revlex/ingest"
	"github.com/cognicore/revlex/pkg/revlex/lexicon"
)

// DefaultMinSupport is the minimum number of distinct reviews a word
// must appear in before it shows up in the word summary.
const DefaultMinSupport = 3

// WordSummary is the per-word usage row. MeanRating is averaged over
// token occurrences, not distinct reviews: a word repeated five times
// in one review contributes its rating five times. This preserves the
// observed upstream behavior; see DESIGN.md.
type WordSummary struct {
	Word          string  `json:"token"`
	ReviewSupport int     `json:"review_support"`
	TotalUses     int     `json:"total_uses"`
	MeanRating    float64 `json:"mean_rating"`
}

// ScoredWord is a word summary row joined with its lexicon score.
// Words absent from the lexicon do not appear in this view.
type ScoredWord struct {
	WordSummary
	Score float64 `json:"polarity_score"`
}

type wordGroup struct {
	reviews   map[int64]struct{}
	total     int
	ratingSum int
}

// WordAggregator groups token records by word.
type WordAggregator struct {
	groups map[string]*wordGroup
}

// NewWordAggregator creates an empty word aggregator.
func NewWordAggregator() *WordAggregator {
	return &WordAggregator{groups: make(map[string]*wordGroup)}
}

// Add records one token occurrence. Every token counts here, matched
// by the lexicon or not; the lexicon join happens only in JoinLexicon.
func (a *WordAggregator) Add(tok ingest.Token) {
	g := a.groups[tok.Word]
	if g == nil {
		g = &wordGroup{reviews: make(map[int64]struct{})}
		a.groups[tok.Word] = g
	}
	g.reviews[tok.ReviewID] = struct{}{}
	g.total++
	g.ratingSum += tok.Rating
}

// Merge folds another aggregator into this one. The other aggregator
// must not be used afterwards.
func (a *WordAggregator) Merge(other *WordAggregator) {
	for word, og := range other.groups {
		g := a.groups[word]
		if g == nil {
			a.groups[word] = og
			continue
		}
		for id := range og.reviews {
			g.reviews[id] = struct{}{}
		}
		g.total += og.total
		g.ratingSum += og.ratingSum
	}
}

// Summaries returns one row per word whose review support reaches
// minSupport, sorted by word. A minSupport <= 0 falls back to
// DefaultMinSupport.
func (a *WordAggregator) Summaries(minSupport int) []WordSummary {
	if minSupport <= 0 {
		minSupport = DefaultMinSupport
	}
	out := make([]WordSummary, 0, len(a.groups))
	for word, g := range a.groups {
		support := len(g.reviews)
		if support < minSupport {
			continue
		}
		out = append(out, WordSummary{
			Word:          word,
			ReviewSupport: support,
			TotalUses:     g.total,
			MeanRating:    float64(g.ratingSum) / float64(g.total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// JoinLexicon inner-joins word summaries against the lexicon. Words
// without a lexicon entry are excluded from this view only; the plain
// summary retains them.
func JoinLexicon(rows []WordSummary, lex *lexicon.Lexicon) []ScoredWord {
	out := make([]ScoredWord, 0, len(rows))
	for _, row := range rows {
		score, ok := lex.Score(row.Word)
		if !ok {
			continue
		}
		out = append(out, ScoredWord{WordSummary: row, Score: score})
	}
	return out
}
