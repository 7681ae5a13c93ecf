// Package langdetect binds an external language-identification library.
//
// Detection is best-effort and treated as an untrusted classifier: the
// pipeline filters on its output but never attempts to correct it.
package langdetect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the detection cache. Scraped corpora contain many
// duplicate texts, so caching by exact text pays off.
const cacheSize = 8192

// Detector identifies the language of a text as a lowercase English
// name, e.g. "english", backed by whatlanggo with an LRU result cache.
type Detector struct {
	cache *lru.Cache[string, string]
}

// New creates a Detector.
func New() (*Detector, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Detector{cache: cache}, nil
}

// Detect returns the best-guess language name for text.
func (d *Detector) Detect(text string) string {
	if lang, ok := d.cache.Get(text); ok {
		return lang
	}
	info := whatlanggo.Detect(text)
	lang := strings.ToLower(info.Lang.String())
	d.cache.Add(text, lang)
	return lang
}
