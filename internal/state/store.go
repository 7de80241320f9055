package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/modunpack/internal/fsops"
)

// LastRunFileName is the record file inside the runs directory.
const LastRunFileName = "last.json"

// ErrUnsupportedSchema is returned for records written by a newer build.
var ErrUnsupportedSchema = errors.New("unsupported run record schema")

// RunStore provides an interface for persisting run records.
type RunStore interface {
	// LoadLast loads the most recent run record.
	// Returns os.ErrNotExist if no run has been recorded.
	LoadLast() (*RunRecord, error)

	// SaveLast replaces the most recent run record atomically.
	SaveLast(rec *RunRecord) error
}

// FileRunStore implements RunStore using a JSON file on disk.
type FileRunStore struct {
	fs      fsops.FS
	runsDir string
}

// NewFileRunStore creates a new FileRunStore.
func NewFileRunStore(fs fsops.FS, runsDir string) *FileRunStore {
	return &FileRunStore{
		fs:      fs,
		runsDir: runsDir,
	}
}

// LoadLast loads the most recent run record.
func (s *FileRunStore) LoadLast() (*RunRecord, error) {
	path := filepath.Join(s.runsDir, LastRunFileName)

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}

	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record: %w", err)
	}
	if rec.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedSchema, rec.SchemaVersion)
	}

	return &rec, nil
}

// SaveLast replaces the most recent run record atomically.
func (s *FileRunStore) SaveLast(rec *RunRecord) error {
	path := filepath.Join(s.runsDir, LastRunFileName)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	if err := s.fs.WriteFrom(path, bytes.NewReader(data), 0644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}

	return nil
}
