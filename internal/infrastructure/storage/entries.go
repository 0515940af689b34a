package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/foodtrack/backend/internal/domain"
)

// FileEntryRepository persists the food journal as a single JSON file.
// Writes go through a temp file and rename so a crash mid-write never
// corrupts the journal.
type FileEntryRepository struct {
	path string
}

// NewFileEntryRepository creates a repository persisting to the given path
func NewFileEntryRepository(path string) *FileEntryRepository {
	return &FileEntryRepository{path: path}
}

// LoadEntries reads all persisted entries. A missing file is an empty
// journal, not an error.
func (r *FileEntryRepository) LoadEntries() ([]domain.FoodEntry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.FoodEntry{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrStorageFailure, r.path, err)
	}

	var entries []domain.FoodEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", domain.ErrStorageFailure, r.path, err)
	}
	return entries, nil
}

// SaveEntries writes the full journal atomically
func (r *FileEntryRepository) SaveEntries(entries []domain.FoodEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding entries: %v", domain.ErrStorageFailure, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", domain.ErrStorageFailure, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".entries-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing %s: %v", domain.ErrStorageFailure, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing %s: %v", domain.ErrStorageFailure, tmpPath, err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing %s: %v", domain.ErrStorageFailure, r.path, err)
	}
	return nil
}

var _ domain.EntryRepository = (*FileEntryRepository)(nil)
