// Command lexicon-check reports how well a polarity lexicon covers a
// corpus: lexicon size, token counts, match rate, and the most frequent
// unmatched words. Useful when curating stoplist and lexicon files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/cognicore/revlex/pkg/revlex/config"
	"github.com/cognicore/revlex/pkg/revlex/corpus"
	"github.com/cognicore/revlex/pkg/revlex/ingest"
	"github.com/cognicore/revlex/pkg/revlex/lexicon"
)

type coverageReport struct {
	LexiconEntries int             `json:"lexicon_entries"`
	Reviews        int             `json:"reviews"`
	Tokens         int             `json:"tokens"`
	Matched        int             `json:"matched"`
	MatchedPercent float64         `json:"matched_percent"`
	TopUnmatched   []unmatchedWord `json:"top_unmatched"`
}

type unmatchedWord struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

func main() {
	var (
		lexiconPath = flag.String("lexicon", "", "Path to lexicon TSV (required)")
		corpusPath  = flag.String("corpus", "", "Path to corpus CSV (required)")
		stoplist    = flag.String("stoplist", "", "Optional stoplist YAML")
		top         = flag.Int("top", 20, "Number of unmatched words to report")
	)
	flag.Parse()

	if *lexiconPath == "" {
		log.Fatal("--lexicon required")
	}
	if *corpusPath == "" {
		log.Fatal("--corpus required")
	}

	lex, err := lexicon.LoadTSV(*lexiconPath)
	if err != nil {
		log.Fatalf("load lexicon: %v", err)
	}

	var terms []string
	if *stoplist != "" {
		sl, err := config.LoadStoplist(*stoplist)
		if err != nil {
			log.Fatalf("load stoplist: %v", err)
		}
		terms = sl.Terms
	}
	tokenizer := ingest.NewTokenizer(terms)

	reviews, err := corpus.LoadCSV(*corpusPath)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	report := coverageReport{
		LexiconEntries: lex.Len(),
		Reviews:        len(reviews),
	}
	unmatched := make(map[string]int)
	for _, rev := range reviews {
		for _, word := range tokenizer.Tokenize(rev.Text) {
			report.Tokens++
			if lex.Contains(word) {
				report.Matched++
			} else {
				unmatched[word]++
			}
		}
	}
	if report.Tokens > 0 {
		report.MatchedPercent = 100 * float64(report.Matched) / float64(report.Tokens)
	}
	report.TopUnmatched = topUnmatched(unmatched, *top)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))
}

func topUnmatched(counts map[string]int, limit int) []unmatchedWord {
	out := make([]unmatchedWord, 0, len(counts))
	for word, n := range counts {
		out = append(out, unmatchedWord{Word: word, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
