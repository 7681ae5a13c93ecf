package corpus

import (
	"errors"
	"testing"

	"github.com/cognicore/revlex/pkg/revlex/internalerr"
)

func TestParseRatingBijection(t *testing.T) {
	labels := []string{
		LabelDidNotLike,
		LabelItWasOK,
		LabelLiked,
		LabelReallyLiked,
		LabelItWasAmazing,
	}

	seen := make(map[int]string)
	prev := 0
	for _, label := range labels {
		r, err := ParseRating(label)
		if err != nil {
			t.Fatalf("ParseRating(%q): %v", label, err)
		}
		if r < 1 || r > 5 {
			t.Errorf("ParseRating(%q) = %d, want 1..5", label, r)
		}
		if other, dup := seen[r]; dup {
			t.Errorf("labels %q and %q both map to %d", label, other, r)
		}
		seen[r] = label
		if r <= prev {
			t.Errorf("ParseRating(%q) = %d, not increasing with sentiment order", label, r)
		}
		prev = r
	}
}

func TestParseRatingUnknownLabel(t *testing.T) {
	for _, label := range []string{"", "five stars", "It Was Amazing", "it was amazing "} {
		if _, err := ParseRating(label); !errors.Is(err, internalerr.ErrUnknownRating) {
			t.Errorf("ParseRating(%q) err = %v, want ErrUnknownRating", label, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	reviews := []Review{
		{ID: 1, RatingLabel: LabelItWasAmazing},
		{ID: 2, RatingLabel: LabelDidNotLike},
	}

	normalized, err := Normalize(reviews)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if normalized[0].Rating != 5 || normalized[1].Rating != 1 {
		t.Errorf("got ratings %d, %d, want 5, 1", normalized[0].Rating, normalized[1].Rating)
	}

	// Input must stay untouched
	if reviews[0].Rating != 0 {
		t.Error("Normalize mutated its input")
	}
}

func TestNormalizeFailsOnUnknown(t *testing.T) {
	_, err := Normalize([]Review{{ID: 7, RatingLabel: "meh"}})
	if !errors.Is(err, internalerr.ErrUnknownRating) {
		t.Fatalf("err = %v, want ErrUnknownRating", err)
	}
}
