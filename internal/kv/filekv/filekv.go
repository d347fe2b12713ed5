// Package filekv stores key-value pairs in a single JSON file.
package filekv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/babarot/sweep/internal/fs"
	"github.com/babarot/sweep/internal/kv"
)

const (
	currentVersion = 1

	// Filename is the default file name inside the data directory
	Filename = "storage.json"
)

type document struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// Store implements kv.Storage on top of one JSON document.
// Every Set rewrites the document atomically and keeps the previous
// version next to it as a backup.
type Store struct {
	path   string
	mu     sync.Mutex
	closed bool
}

var _ kv.Storage = (*Store)(nil)

// Open returns a Store for path. A missing file is recovered from its
// backup when one exists, otherwise treated as empty.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	restored, err := fs.RestoreBackup(path)
	if err != nil {
		return nil, err
	}
	if restored {
		slog.Warn("storage file restored from backup", "path", path)
	}
	return &Store{path: path}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, kv.ErrClosed
	}

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := doc.Values[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return kv.ErrClosed
	}

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Values[key] = value
	return s.write(doc)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) read() (document, error) {
	doc := document{Version: currentVersion, Values: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("read storage file: %w", err)
	}
	if len(data) == 0 {
		slog.Warn("storage file is empty", "path", s.path)
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode storage file: %w", err)
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	if doc.Version == 0 {
		doc.Version = currentVersion
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}
	if err := fs.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	return nil
}
