package filter

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/revlex/pkg/revlex/corpus"
)

// fakeDetector labels texts containing "bonjour" as french, all else english.
type fakeDetector struct{}

func (fakeDetector) Detect(text string) string {
	if strings.Contains(text, "bonjour") {
		return "french"
	}
	return "english"
}

func sample() []corpus.Review {
	return []corpus.Review{
		{ID: 1, RatingLabel: corpus.LabelItWasAmazing, Text: "A wonderful, heart-warming story"},
		{ID: 2, RatingLabel: corpus.LabelLiked, Text: "bonjour mes amis, quel livre"},
		{ID: 3, RatingLabel: "5/5 would read again", Text: "Rating label came out of the scraper mangled"},
		{ID: 4, RatingLabel: corpus.LabelItWasOK, Text: "meh"},
		{ID: 5, RatingLabel: corpus.LabelDidNotLike, Text: "Dreadful from start to finish"},
	}
}

func TestApplyCriteria(t *testing.T) {
	f := New(fakeDetector{}, "english", 5)
	kept := f.Apply(sample())

	var ids []int64
	for _, rev := range kept {
		ids = append(ids, rev.ID)
	}
	want := []int64{1, 5}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("kept %v, want %v", ids, want)
	}

	stats := f.Stats()
	if stats[ReasonLanguage] != 1 || stats[ReasonRatingLabel] != 1 || stats[ReasonTooShort] != 1 {
		t.Errorf("unexpected exclusion stats: %v", stats)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	f := New(fakeDetector{}, "english", 5)
	once := f.Apply(sample())
	twice := f.Apply(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second application changed the result:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := sample()
	snapshot := make([]corpus.Review, len(in))
	copy(snapshot, in)

	New(fakeDetector{}, "english", 5).Apply(in)
	if !reflect.DeepEqual(in, snapshot) {
		t.Error("Apply mutated its input")
	}
}

func TestApplyUsesPrecomputedLanguage(t *testing.T) {
	f := New(fakeDetector{}, "english", 5)
	// Text would detect as english, but the record says french.
	kept := f.Apply([]corpus.Review{
		{ID: 1, RatingLabel: corpus.LabelLiked, Language: "french", Text: "A perfectly english sentence"},
	})
	if len(kept) != 0 {
		t.Error("precomputed language field should win over detection")
	}
}

func TestCutoffLong(t *testing.T) {
	f := New(fakeDetector{}, "english", 5)
	reviews := []corpus.Review{
		{ID: 1, Text: "short enough"},
		{ID: 2, Text: strings.Repeat("x", 9000)},
	}

	kept := f.CutoffLong(reviews, 8000)
	if len(kept) != 1 || kept[0].ID != 1 {
		t.Fatalf("kept %v, want only review 1", kept)
	}
	if f.Stats()[ReasonTooLong] != 1 {
		t.Errorf("too_long count = %d, want 1", f.Stats()[ReasonTooLong])
	}
}
