package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cognicore/revlex/pkg/revlex/internalerr"
)

// LoadCSV reads a review corpus from a CSV file with a header row.
// Recognized columns: book, rating, review, language, author; extra
// columns are ignored and missing optional columns stay empty.
// Malformed rows are skipped with a warning, not an error. An empty
// corpus is an error since the run cannot proceed without input.
func LoadCSV(path string) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read corpus header %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"book", "rating", "review"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("corpus %s: missing column %q: %w", path, required, internalerr.ErrInvalidInput)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var (
		reviews []Review
		skipped int
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		text := field(row, "review")
		if strings.TrimSpace(text) == "" {
			skipped++
			continue
		}
		reviews = append(reviews, Review{
			ID:          int64(len(reviews) + 1),
			Book:        field(row, "book"),
			Author:      field(row, "author"),
			Text:        text,
			Language:    strings.ToLower(field(row, "language")),
			RatingLabel: strings.TrimSpace(field(row, "rating")),
		})
	}

	if skipped > 0 {
		slog.Warn("skipped malformed corpus rows", "path", path, "skipped", skipped)
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("corpus %s: no usable rows: %w", path, internalerr.ErrMissingResource)
	}
	return reviews, nil
}

// LoadJSONL reads a review corpus from a JSONL file, one review object
// per line. Malformed lines are skipped with a warning.
func LoadJSONL(path string) ([]Review, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var (
		reviews []Review
		skipped int
		maxID   int64
	)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rev Review
		if err := json.Unmarshal([]byte(line), &rev); err != nil {
			slog.Debug("skipping malformed corpus line", "path", path, "line", i+1, "err", err)
			skipped++
			continue
		}
		if rev.ID > maxID {
			maxID = rev.ID
		}
		rev.Language = strings.ToLower(rev.Language)
		reviews = append(reviews, rev)
	}

	// Synthetic IDs for rows that carried none start above the highest
	// explicit ID, so they can never collide with one and silently
	// merge two reviews downstream.
	nextID := maxID
	for i := range reviews {
		if reviews[i].ID == 0 {
			nextID++
			reviews[i].ID = nextID
		}
	}

	if skipped > 0 {
		slog.Warn("skipped malformed corpus lines", "path", path, "skipped", skipped)
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("corpus %s: no usable rows: %w", path, internalerr.ErrMissingResource)
	}
	return reviews, nil
}
