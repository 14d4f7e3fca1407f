// Package keywords provides the keyword list sources: a static list from
// configuration, a local CSV file, or a CSV blob in Azure Storage.
package keywords

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Store loads the configured keyword list
type Store interface {
	Load(ctx context.Context) ([]string, error)
}

// StaticStore serves a fixed keyword list from configuration
type StaticStore struct {
	keywords []string
}

var _ Store = (*StaticStore)(nil)

// NewStaticStore creates a store backed by a fixed list
func NewStaticStore(keywords []string) *StaticStore {
	return &StaticStore{keywords: keywords}
}

func (s *StaticStore) Load(ctx context.Context) ([]string, error) {
	return s.keywords, nil
}

// FileStore loads keywords from a local CSV file
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by a CSV file on disk
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open keywords file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads keywords from CSV content. Every field of every row is a
// candidate keyword; fields are lowercased and trimmed, and empty fields and
// duplicates are dropped. First-seen order is preserved.
func ParseCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	seen := make(map[string]bool)
	var keywords []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse keywords CSV: %w", err)
		}
		for _, field := range record {
			kw := strings.ToLower(strings.TrimSpace(field))
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	return keywords, nil
}
