package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"deptevents/internal/domain"
)

// CorruptSuffix is appended to a data file that could not be decoded.
const CorruptSuffix = ".corrupt"

// KVStore keeps every key in one JSON document on disk. Each Set or Delete
// rewrites the document through a temp file and rename.
type KVStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewKVStore returns a store backed by path. The file is created on first write.
func NewKVStore(path string, logger *slog.Logger) (*KVStore, error) {
	if path == "" {
		return nil, errors.New("data file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &KVStore{path: path, logger: logger}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return []byte(v), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc[key] = string(value)
	return s.save(doc)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.save(doc)
}

func (s *KVStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	doc := map[string]string{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.quarantine(err)
		return map[string]string{}, nil
	}
	return doc, nil
}

// quarantine moves an undecodable data file aside so the store starts empty
// and the next write does not overwrite the only copy.
func (s *KVStore) quarantine(cause error) {
	backup := s.path + CorruptSuffix
	if err := os.Rename(s.path, backup); err != nil {
		s.logger.Warn("data file is corrupt, treating as empty", "path", s.path, "error", cause, "backup_error", err)
		return
	}
	s.logger.Warn("data file is corrupt, treating as empty", "path", s.path, "backup", backup, "error", cause)
}

func (s *KVStore) save(doc map[string]string) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".deptevents-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
