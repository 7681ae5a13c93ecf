package ingest

import "github.com/cognicore/revlex/pkg/revlex/corpus"

// Token is one surviving word occurrence from one review. The review's
// author and language fields are dropped here; only the identity and
// rating travel downstream.
type Token struct {
	ReviewID int64
	Rating   int
	Word     string
}

// Expand tokenizes each review and emits one Token per surviving word
// occurrence. Token order within a review is insertion order, but
// downstream aggregation groups by identity, so order never matters.
func (t *Tokenizer) Expand(reviews []corpus.Review) []Token {
	var tokens []Token
	for _, rev := range reviews {
		for _, word := range t.Tokenize(rev.Text) {
			tokens = append(tokens, Token{
				ReviewID: rev.ID,
				Rating:   rev.Rating,
				Word:     word,
			})
		}
	}
	return tokens
}
