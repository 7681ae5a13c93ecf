// Package lexicon provides the fixed word-polarity lexicon used for
// sentiment lookup.
//
// The lexicon is loaded once at startup and immutable afterwards.
// Lookups distinguish "absent" from "neutral": a token missing from the
// lexicon carries no polarity at all and must be excluded from sentiment
// aggregation, never averaged in as zero.
package lexicon

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/revlex/pkg/revlex/internalerr"
)

// Lexicon maps lowercase tokens to signed polarity scores
// (AFINN-style, roughly -5..+5).
type Lexicon struct {
	scores map[string]float64
}

// New builds a lexicon from an in-memory score map. Intended for tests
// and for callers that assemble scores programmatically.
func New(scores map[string]float64) *Lexicon {
	m := make(map[string]float64, len(scores))
	for word, score := range scores {
		m[strings.ToLower(word)] = score
	}
	return &Lexicon{scores: m}
}

// Score returns the polarity score of a token and whether the token is
// present at all.
func (l *Lexicon) Score(token string) (float64, bool) {
	score, ok := l.scores[strings.ToLower(token)]
	return score, ok
}

// Contains reports whether the token has a lexicon entry.
func (l *Lexicon) Contains(token string) bool {
	_, ok := l.scores[strings.ToLower(token)]
	return ok
}

// Len returns the number of lexicon entries.
func (l *Lexicon) Len() int {
	return len(l.scores)
}

// LoadTSV loads a tab-separated "word<TAB>score" lexicon file.
// Blank lines and lines starting with # are ignored; malformed lines
// are skipped. An empty result is an error, since running without a
// lexicon would silently produce no sentiment at all.
func LoadTSV(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	scores := make(map[string]float64, 2048)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(parts[0]))
		score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || word == "" {
			continue
		}
		scores[word] = score
	}

	if len(scores) == 0 {
		return nil, fmt.Errorf("lexicon %s: no entries: %w", path, internalerr.ErrMissingResource)
	}
	return &Lexicon{scores: scores}, nil
}

// LoadYAML loads a lexicon from a YAML file.
//
// Expected format:
//
//	entries:
//	  - word: loved
//	    score: 3
//	  - word: hated
//	    score: -3
func LoadYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	var doc struct {
		Entries []struct {
			Word  string  `yaml:"word"`
			Score float64 `yaml:"score"`
		} `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	scores := make(map[string]float64, len(doc.Entries))
	for _, e := range doc.Entries {
		word := strings.ToLower(strings.TrimSpace(e.Word))
		if word == "" {
			continue
		}
		scores[word] = e.Score
	}

	if len(scores) == 0 {
		return nil, fmt.Errorf("lexicon %s: no entries: %w", path, internalerr.ErrMissingResource)
	}
	return &Lexicon{scores: scores}, nil
}
