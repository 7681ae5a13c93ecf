// Package filter cleans a raw review batch before tokenization.
//
// Filtering is a data-quality decision, not error handling: records
// that fail a criterion are excluded and counted, never raised. The
// filter is a pure predicate over each record, so applying it twice
// yields the same result as once.
package filter

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cognicore/revlex/pkg/revlex/corpus"
)

// Defaults for the length bounds. The upper cutoff is a dataset-level
// policy for outlier-length reviews, applied as a separate pass.
const (
	DefaultMinLength = 5
	DefaultMaxLength = 8000
)

// Detector is the external language-identification capability.
// Its output is a best-guess lowercase language name.
type Detector interface {
	Detect(text string) string
}

// Exclusion reasons tracked by the filter.
const (
	ReasonLanguage    = "wrong_language"
	ReasonRatingLabel = "bad_rating_label"
	ReasonTooShort    = "too_short"
	ReasonTooLong     = "too_long"
)

// Filter validates raw review records.
type Filter struct {
	detector  Detector
	language  string
	minLength int

	mu       sync.Mutex
	excluded map[string]int
}

// New creates a Filter keeping only records in the given language
// (lowercase name, e.g. "english") with a canonical rating label and a
// text of at least minLength runes. A minLength <= 0 falls back to
// DefaultMinLength.
func New(detector Detector, language string, minLength int) *Filter {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return &Filter{
		detector:  detector,
		language:  strings.ToLower(language),
		minLength: minLength,
		excluded:  make(map[string]int),
	}
}

// Apply returns the subset of reviews passing all per-record criteria.
// The input is never mutated. Records whose Language field is empty are
// run through the detector first.
func (f *Filter) Apply(reviews []corpus.Review) []corpus.Review {
	kept := make([]corpus.Review, 0, len(reviews))
	for _, rev := range reviews {
		lang := rev.Language
		if lang == "" {
			lang = f.detector.Detect(rev.Text)
		}
		if lang != f.language {
			f.exclude(ReasonLanguage)
			continue
		}
		if !corpus.KnownRating(rev.RatingLabel) {
			f.exclude(ReasonRatingLabel)
			continue
		}
		if utf8.RuneCountInString(rev.Text) < f.minLength {
			f.exclude(ReasonTooShort)
			continue
		}
		rev.Language = lang
		kept = append(kept, rev)
	}
	return kept
}

// CutoffLong drops reviews whose text exceeds max runes. A max <= 0
// falls back to DefaultMaxLength.
func (f *Filter) CutoffLong(reviews []corpus.Review, max int) []corpus.Review {
	if max <= 0 {
		max = DefaultMaxLength
	}
	kept := make([]corpus.Review, 0, len(reviews))
	for _, rev := range reviews {
		if utf8.RuneCountInString(rev.Text) > max {
			f.exclude(ReasonTooLong)
			continue
		}
		kept = append(kept, rev)
	}
	return kept
}

// Stats returns a copy of the exclusion counts by reason.
func (f *Filter) Stats() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int, len(f.excluded))
	for reason, n := range f.excluded {
		out[reason] = n
	}
	return out
}

func (f *Filter) exclude(reason string) {
	f.mu.Lock()
	f.excluded[reason]++
	f.mu.Unlock()
}
