// Package report writes a run's summary tables to output sinks.
package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cognicore/revlex/pkg/revlex"
)

// Sink persists one run's output tables.
type Sink interface {
	Write(res revlex.Result) error
	Close() error
}

// CSVSink writes the summary tables as CSV files in a directory:
// review_sentiment.csv, word_summary.csv, and word_scores.csv for the
// lexicon-joined view.
type CSVSink struct {
	dir string
}

// NewCSVSink creates the output directory if needed.
func NewCSVSink(dir string) (*CSVSink, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &CSVSink{dir: dir}, nil
}

// Write writes all three tables. Each table is staged to a temp file
// and the set is renamed into place only once every write succeeded, so
// a failed run leaves no partial output behind.
func (s *CSVSink) Write(res revlex.Result) error {
	reviewRows := make([][]string, 0, len(res.Reviews))
	for _, r := range res.Reviews {
		reviewRows = append(reviewRows, []string{
			strconv.FormatInt(r.ReviewID, 10),
			strconv.Itoa(r.Rating),
			formatFloat(r.Mean),
			formatFloat(r.Median),
		})
	}

	wordRows := make([][]string, 0, len(res.Words))
	for _, w := range res.Words {
		wordRows = append(wordRows, []string{
			w.Word,
			strconv.Itoa(w.ReviewSupport),
			strconv.Itoa(w.TotalUses),
			formatFloat(w.MeanRating),
		})
	}

	scoredRows := make([][]string, 0, len(res.ScoredWords))
	for _, w := range res.ScoredWords {
		scoredRows = append(scoredRows, []string{
			w.Word,
			strconv.Itoa(w.ReviewSupport),
			strconv.Itoa(w.TotalUses),
			formatFloat(w.MeanRating),
			formatFloat(w.Score),
		})
	}

	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"review_sentiment.csv", []string{"review_id", "rating", "mean_sentiment", "median_sentiment"}, reviewRows},
		{"word_summary.csv", []string{"token", "review_support", "total_uses", "mean_rating"}, wordRows},
		{"word_scores.csv", []string{"token", "review_support", "total_uses", "mean_rating", "polarity_score"}, scoredRows},
	}

	paths := make([]string, len(tables))
	for i, tbl := range tables {
		paths[i] = filepath.Join(s.dir, tbl.name)
	}
	return stageAndCommit(paths, func(i int, path string) error {
		return writeCSV(path, tables[i].header, tables[i].rows)
	})
}

// Close is a no-op; each Write flushes and closes its files.
func (s *CSVSink) Close() error { return nil }

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// JSONSink writes the summary tables as newline-delimited JSON files:
// review_sentiment.jsonl, word_summary.jsonl, and word_scores.jsonl.
type JSONSink struct {
	dir string
}

// NewJSONSink creates the output directory if needed.
func NewJSONSink(dir string) (*JSONSink, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &JSONSink{dir: dir}, nil
}

// Write writes all three tables in JSONL format, staged and committed
// together like the CSV sink.
func (s *JSONSink) Write(res revlex.Result) error {
	tables := []struct {
		name string
		n    int
		row  func(int) any
	}{
		{"review_sentiment.jsonl", len(res.Reviews), func(i int) any { return res.Reviews[i] }},
		{"word_summary.jsonl", len(res.Words), func(i int) any { return res.Words[i] }},
		{"word_scores.jsonl", len(res.ScoredWords), func(i int) any { return res.ScoredWords[i] }},
	}

	paths := make([]string, len(tables))
	for i, tbl := range tables {
		paths[i] = filepath.Join(s.dir, tbl.name)
	}
	return stageAndCommit(paths, func(i int, path string) error {
		return writeJSONL(path, tables[i].n, tables[i].row)
	})
}

// Close is a no-op; each Write flushes and closes its files.
func (s *JSONSink) Close() error { return nil }

func writeJSONL(path string, n int, row func(int) any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	buffer := bufio.NewWriter(f)
	encoder := json.NewEncoder(buffer)
	for i := 0; i < n; i++ {
		if err := encoder.Encode(row(i)); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}
	if err := buffer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}
	return nil
}

// stageAndCommit writes each target through a .tmp sibling and renames
// the whole set into place only after every write succeeded. On any
// failure it removes the temps and whatever it already committed, so
// the output directory holds either all files of a run or none.
func stageAndCommit(paths []string, write func(i int, path string) error) error {
	tmps := make([]string, 0, len(paths))
	for i, path := range paths {
		tmp := path + ".tmp"
		if err := write(i, tmp); err != nil {
			removeAll(append(tmps, tmp))
			return err
		}
		tmps = append(tmps, tmp)
	}

	committed := make([]string, 0, len(paths))
	for i, path := range paths {
		if err := os.Rename(tmps[i], path); err != nil {
			removeAll(tmps[i:])
			removeAll(committed)
			return fmt.Errorf("commit %s: %w", path, err)
		}
		committed = append(committed, path)
	}
	return nil
}

func removeAll(paths []string) {
	for _, path := range paths {
		os.Remove(path)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
