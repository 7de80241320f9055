package archive

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danieljhkim/modunpack/internal/fsops"
)

func TestFilterArchiveFiles(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "mixed files",
			input: []string{"a.zip", "b.rar", "c.txt", "d.jpeg"},
			want:  []string{"a.zip", "b.rar"},
		},
		{
			name:  "order preserved",
			input: []string{"z.rar", "a.zip"},
			want:  []string{"z.rar", "a.zip"},
		},
		{
			name:  "suffix match is case-sensitive",
			input: []string{"UPPER.ZIP", "Mixed.Rar", "lower.zip"},
			want:  []string{"lower.zip"},
		},
		{
			name:  "suffix must be at the end",
			input: []string{"mods.zip.part", "mods.rar.txt"},
			want:  []string{},
		},
		{
			name:  "empty input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArchiveFiles(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterArchiveFiles(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"pack.zip", FormatZip},
		{"pack.rar", FormatRar},
		{"pack.7z", FormatUnsupported},
		{"pack.ZIP", FormatUnsupported},
		{"zip", FormatUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatOf(tt.name); got != tt.want {
				t.Errorf("FormatOf(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestListArchives(t *testing.T) {
	fs := fsops.NewRealFS()

	t.Run("lists archives sorted and skips the rest", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "b.rar"), "rar")
		writeFile(t, filepath.Join(dir, "a.zip"), "zip")
		writeFile(t, filepath.Join(dir, "notes.txt"), "txt")
		if err := os.MkdirAll(filepath.Join(dir, "folder.zip"), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}

		entries, err := ListArchives(fs, dir)
		if err != nil {
			t.Fatalf("ListArchives failed: %v", err)
		}

		want := []Entry{
			{Name: "a.zip", Path: filepath.Join(dir, "a.zip"), Format: FormatZip},
			{Name: "b.rar", Path: filepath.Join(dir, "b.rar"), Format: FormatRar},
		}
		if !reflect.DeepEqual(entries, want) {
			t.Errorf("ListArchives = %+v, want %+v", entries, want)
		}
	})

	t.Run("empty folder", func(t *testing.T) {
		entries, err := ListArchives(fs, t.TempDir())
		if err != nil {
			t.Fatalf("ListArchives failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %v", entries)
		}
	})

	t.Run("missing folder", func(t *testing.T) {
		_, err := ListArchives(fs, filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
