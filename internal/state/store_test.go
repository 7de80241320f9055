package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/modunpack/internal/fsops"
)

func TestFileRunStore_LoadLast_NoRecord(t *testing.T) {
	store := NewFileRunStore(fsops.NewRealFS(), t.TempDir())

	_, err := store.LoadLast()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadLast() error = %v, want os.ErrNotExist", err)
	}
}

func TestFileRunStore_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")
	store := NewFileRunStore(fsops.NewRealFS(), dir)

	started := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRunRecord("/in", "/out")
	rec.StartedAt = started
	rec.FinishedAt = started.Add(2 * time.Second)
	rec.Archives = 3
	rec.Extracted = 2
	rec.Failures = append(rec.Failures, FailureRecord{Archive: "bad.zip", Kind: "invalid", Error: "not a zip"})
	rec.Actions = 4
	rec.Overwrites = 1

	if err := store.SaveLast(rec); err != nil {
		t.Fatalf("SaveLast() error = %v", err)
	}

	got, err := store.LoadLast()
	if err != nil {
		t.Fatalf("LoadLast() error = %v", err)
	}

	if got.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", got.SchemaVersion, SchemaVersion)
	}
	if got.Input != "/in" || got.Output != "/out" {
		t.Errorf("folders = %q, %q", got.Input, got.Output)
	}
	if !got.StartedAt.Equal(started) || got.FinishedAt.Sub(got.StartedAt) != 2*time.Second {
		t.Errorf("timestamps = %v, %v", got.StartedAt, got.FinishedAt)
	}
	if got.Archives != 3 || got.Extracted != 2 || got.Actions != 4 || got.Overwrites != 1 {
		t.Errorf("counts = %+v", got)
	}
	if len(got.Failures) != 1 || got.Failures[0].Archive != "bad.zip" {
		t.Errorf("Failures = %+v", got.Failures)
	}
}

func TestFileRunStore_SaveLastReplaces(t *testing.T) {
	store := NewFileRunStore(fsops.NewRealFS(), t.TempDir())

	for _, output := range []string{"/first", "/second"} {
		if err := store.SaveLast(NewRunRecord("/in", output)); err != nil {
			t.Fatalf("SaveLast(%s) error = %v", output, err)
		}
	}

	got, err := store.LoadLast()
	if err != nil {
		t.Fatalf("LoadLast() error = %v", err)
	}
	if got.Output != "/second" {
		t.Errorf("Output = %q, want /second", got.Output)
	}
}

func TestFileRunStore_LoadLast_BadRecords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed json",
			content: "{not json",
		},
		{
			name:    "newer schema",
			content: `{"schemaVersion": 99}`,
			wantErr: ErrUnsupportedSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, LastRunFileName), []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := NewFileRunStore(fsops.NewRealFS(), dir).LoadLast()
			if err == nil {
				t.Fatal("LoadLast() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadLast() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
