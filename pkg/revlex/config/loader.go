package config

import (
	"fmt"

	"github.com/cognicore/revlex/pkg/revlex/ingest"
	"github.com/cognicore/revlex/pkg/revlex/lexicon"
)

// Loader loads reference data files and constructs pipeline components.
type Loader struct {
	StoplistPath  string
	LexiconPath   string
	LexiconFormat string // tsv or yaml
}

// Components holds the loaded pipeline components.
type Components struct {
	Tokenizer *ingest.Tokenizer
	Lexicon   *lexicon.Lexicon
}

// FromConfig builds a Loader from a run configuration.
func FromConfig(cfg *Config) Loader {
	return Loader{
		StoplistPath:  cfg.StoplistPath,
		LexiconPath:   cfg.Lexicon.Path,
		LexiconFormat: cfg.Lexicon.Format,
	}
}

// Load reads all reference data and returns initialized components.
// A missing lexicon or stoplist is fatal: the pipeline must not run
// partially configured.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Tokenizer = ingest.NewTokenizer(stoplist.Terms)
	} else {
		comp.Tokenizer = ingest.NewTokenizer([]string{})
	}

	var (
		lex *lexicon.Lexicon
		err error
	)
	switch l.LexiconFormat {
	case "yaml":
		lex, err = lexicon.LoadYAML(l.LexiconPath)
	default:
		lex, err = lexicon.LoadTSV(l.LexiconPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	comp.Lexicon = lex

	return comp, nil
}
