package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"joeRoute/internal/model"
)

// JsonlStorage appends quotes to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

var _ Storage = (*JsonlStorage)(nil)

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutQuoteBatch writes one JSON object per quote, creating the output
// directory when missing.
func (s *JsonlStorage) PutQuoteBatch(quotes []model.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	if s.path == "" {
		return fmt.Errorf("%w: jsonl output path is empty", model.ErrInvalidInput)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, quote := range quotes {
		if err := encoder.Encode(quote); err != nil {
			return fmt.Errorf("write quote %s->%s: %w", quote.Input, quote.Output, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
