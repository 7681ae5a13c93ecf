// Package revlex wires the review-sentiment pipeline end to end:
// record filtering, rating normalization, tokenization, lexicon join,
// and the two aggregations.
package revlex

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/revlex/pkg/revlex/aggregate"
	"github.com/cognicore/revlex/pkg/revlex/corpus"
	"github.com/cognicore/revlex/pkg/revlex/filter"
	"github.com/cognicore/revlex/pkg/revlex/ingest"
	"github.com/cognicore/revlex/pkg/revlex/lexicon"
)

// Options configures an Engine.
type Options struct {
	Detector  filter.Detector
	Tokenizer *ingest.Tokenizer
	Lexicon   *lexicon.Lexicon

	Language   string // target language, default "english"
	MinLength  int    // minimum text length in runes
	MaxLength  int    // outlier cutoff in runes
	MinSupport int    // word summary support threshold
	Workers    int    // tokenization/aggregation parallelism
}

// Engine runs the batch pipeline.
type Engine struct {
	opts    Options
	entropy *ulid.MonotonicEntropy
}

// Result is one complete run's output. A run either produces both
// tables or fails before producing anything.
type Result struct {
	RunID       string
	Reviews     []aggregate.ReviewSummary
	Words       []aggregate.WordSummary
	ScoredWords []aggregate.ScoredWord
	Excluded    map[string]int
	TotalIn     int
	TotalKept   int
}

// New creates an Engine with the given components.
func New(opts Options) *Engine {
	if opts.Language == "" {
		opts.Language = "english"
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Engine{
		opts:    opts,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Run executes the full pipeline over an in-memory review batch.
func (e *Engine) Run(ctx context.Context, reviews []corpus.Review) (Result, error) {
	runID := ulid.MustNew(ulid.Timestamp(time.Now()), e.entropy).String()
	result := Result{RunID: runID, TotalIn: len(reviews)}

	f := filter.New(e.opts.Detector, e.opts.Language, e.opts.MinLength)

	cleaned := f.Apply(reviews)
	cleaned = f.CutoffLong(cleaned, e.opts.MaxLength)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	slog.Info("filtered corpus", "run", runID, "in", len(reviews), "kept", len(cleaned))

	normalized, err := corpus.Normalize(cleaned)
	if err != nil {
		// The filter only passes canonical labels, so this means the
		// filter and the normalizer disagree on the label set.
		return Result{}, fmt.Errorf("rating normalization after filtering: %w", err)
	}

	reviewAgg, wordAgg, err := e.aggregate(ctx, normalized)
	if err != nil {
		return Result{}, err
	}

	result.Reviews = reviewAgg.Summaries()
	result.Words = wordAgg.Summaries(e.opts.MinSupport)
	result.ScoredWords = aggregate.JoinLexicon(result.Words, e.opts.Lexicon)
	result.Excluded = f.Stats()
	result.TotalKept = len(normalized)

	slog.Info("aggregation complete", "run", runID,
		"review_rows", len(result.Reviews),
		"word_rows", len(result.Words),
		"scored_word_rows", len(result.ScoredWords))
	return result, nil
}

// aggregate fans the cleaned reviews out across workers. Each worker
// tokenizes its share and feeds private partial aggregators; partials
// merge into the same tables as a single pass would produce, so the
// worker count never changes the result.
func (e *Engine) aggregate(ctx context.Context, reviews []corpus.Review) (*aggregate.ReviewAggregator, *aggregate.WordAggregator, error) {
	workers := e.opts.Workers
	if workers > len(reviews) {
		workers = len(reviews)
	}
	if workers < 1 {
		workers = 1
	}

	type partial struct {
		reviews *aggregate.ReviewAggregator
		words   *aggregate.WordAggregator
	}

	partials := make([]partial, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ra := aggregate.NewReviewAggregator()
			wa := aggregate.NewWordAggregator()
			for i := w; i < len(reviews); i += workers {
				for _, tok := range e.opts.Tokenizer.Expand(reviews[i : i+1]) {
					ra.AddMatched(tok, e.opts.Lexicon)
					wa.Add(tok)
				}
			}
			partials[w] = partial{reviews: ra, words: wa}
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	reviewAgg := aggregate.NewReviewAggregator()
	wordAgg := aggregate.NewWordAggregator()
	for _, p := range partials {
		reviewAgg.Merge(p.reviews)
		wordAgg.Merge(p.words)
	}
	return reviewAgg, wordAgg, nil
}
