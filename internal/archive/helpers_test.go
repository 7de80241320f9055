package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// zipEntry is a file to place in a test archive. A name ending in "/" is
// stored as a directory entry.
type zipEntry struct {
	name    string
	content string
	nonUTF8 bool
}

// writeZip builds a deflate zip archive at path.
func writeZip(t *testing.T, path string, entries ...zipEntry) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: zip.Deflate, NonUTF8: e.nonUTF8}
		fw, err := w.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("failed to add %s: %v", e.name, err)
		}
		if e.content != "" {
			if _, err := fw.Write([]byte(e.content)); err != nil {
				t.Fatalf("failed to write %s: %v", e.name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish zip: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// fakeRunner implements CommandRunner without spawning processes.
type fakeRunner struct {
	// tools maps command names to resolved paths; missing names fail LookPath
	tools map[string]string

	// run is invoked for every Run call
	run func(name string, args []string) ([]byte, error)

	calls [][]string
}

func (r *fakeRunner) LookPath(file string) (string, error) {
	if p, ok := r.tools[file]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", file)
}

func (r *fakeRunner) Run(ctx context.Context, name string, args []string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.run == nil {
		return nil, nil
	}
	return r.run(name, args)
}
