// Package corpus loads source sentence material: Core-style CSV exports
// and plain text files.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsumiki/tsumiki/pkg/tokenize"
)

// SentenceColumn is the CSV column holding the example sentence in
// Core 2k/6k exports.
const SentenceColumn = "sentence_expression"

// ReadCSV extracts sentence texts from a Core-style CSV export. The
// column is located by header name so column reordering doesn't break
// imports. Blank sentences are skipped.
func ReadCSV(r io.Reader, column string) ([]string, error) {
	if column == "" {
		column = SentenceColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("csv has no %q column", column)
	}

	var sentences []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		if idx >= len(record) {
			continue
		}
		if s := strings.TrimSpace(record[idx]); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences, nil
}

// LoadCSV reads a Core-style CSV file from disk.
func LoadCSV(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, column)
}

// FromText splits free-form text into sentences, quote-aware.
func FromText(text string) []string {
	return tokenize.SplitSentences(text)
}

// LoadText reads a plain text file and splits it into sentences.
func LoadText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromText(string(data)), nil
}
