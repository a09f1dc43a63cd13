package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Storage is a per-user key-value store, the local counterpart of browser
// storage.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// StateStore loads and saves the row snapshot.
type StateStore interface {
	Load() ([]TimeRow, error)
	Save(rows []TimeRow) error
	Clear() error
}

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// OpenStorage opens the key-value backend by name.
func OpenStorage(backend, path string) (Storage, error) {
	switch backend {
	case BackendSQLite, "":
		return NewRepo(path)
	case BackendBolt:
		return NewBoltRepo(path)
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

type MemoryStorage struct {
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// RowStore keeps the rows as a JSON array under a single key.
type RowStore struct {
	storage Storage
	key     string
	logger  *slog.Logger
}

func NewRowStore(storage Storage, logger *slog.Logger) *RowStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RowStore{storage: storage, key: StateKey, logger: logger}
}

// Load returns the stored rows. A missing or unreadable snapshot is an empty
// sequence, only storage failures are errors.
func (s *RowStore) Load() ([]TimeRow, error) {
	raw, ok, err := s.storage.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", s.key, err)
	}
	if !ok {
		return []TimeRow{}, nil
	}

	var rows []TimeRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		s.logger.Warn("discarding unreadable state", "key", s.key, "error", err)
		return []TimeRow{}, nil
	}
	if rows == nil {
		rows = []TimeRow{}
	}

	return rows, nil
}

func (s *RowStore) Save(rows []TimeRow) error {
	if rows == nil {
		rows = []TimeRow{}
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("error encoding rows: %w", err)
	}

	if err := s.storage.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("error writing %s: %w", s.key, err)
	}

	s.logger.Debug("saved state", "key", s.key, "rows", len(rows))
	return nil
}

func (s *RowStore) Clear() error {
	if err := s.storage.Delete(s.key); err != nil {
		return fmt.Errorf("error deleting %s: %w", s.key, err)
	}
	return nil
}
