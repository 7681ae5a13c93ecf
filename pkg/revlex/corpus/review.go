// Package corpus defines the review record model and corpus loaders.
package corpus

import (
	"fmt"

	"github.com/cognicore/revlex/pkg/revlex/internalerr"
)

// Review is one scraped book review. Records are treated as immutable
// once they leave the filtering stage; downstream stages only derive
// new records from them.
type Review struct {
	ID          int64  `json:"id"`
	Book        string `json:"book"`
	Author      string `json:"author"`
	Text        string `json:"review"`
	Language    string `json:"language,omitempty"`
	RatingLabel string `json:"rating"`
	Rating      int    `json:"rating_numeric,omitempty"`
}

// The five canonical rating labels, in increasing sentiment order.
const (
	LabelDidNotLike   = "did not like it"
	LabelItWasOK      = "it was ok"
	LabelLiked        = "liked it"
	LabelReallyLiked  = "really liked it"
	LabelItWasAmazing = "it was amazing"
)

var ratingScale = map[string]int{
	LabelDidNotLike:   1,
	LabelItWasOK:      2,
	LabelLiked:        3,
	LabelReallyLiked:  4,
	LabelItWasAmazing: 5,
}

// ParseRating maps a canonical rating label to its ordinal value 1..5.
// Labels outside the closed five-value set return ErrUnknownRating:
// an unknown label reaching this point means the record filter and the
// normalizer are out of sync, so it must never be coerced to a default.
func ParseRating(label string) (int, error) {
	if r, ok := ratingScale[label]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: %q", internalerr.ErrUnknownRating, label)
}

// KnownRating reports whether label belongs to the canonical set.
func KnownRating(label string) bool {
	_, ok := ratingScale[label]
	return ok
}

// Normalize returns a copy of the reviews with Rating populated from
// RatingLabel. It fails on the first unknown label.
func Normalize(reviews []Review) ([]Review, error) {
	out := make([]Review, len(reviews))
	for i, rev := range reviews {
		r, err := ParseRating(rev.RatingLabel)
		if err != nil {
			return nil, fmt.Errorf("review %d: %w", rev.ID, err)
		}
		rev.Rating = r
		out[i] = rev
	}
	return out, nil
}
