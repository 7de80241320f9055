package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/modunpack/internal/clock"
	"github.com/danieljhkim/modunpack/internal/config"
	"github.com/danieljhkim/modunpack/internal/fsops"
	"github.com/danieljhkim/modunpack/internal/hash"
	"github.com/danieljhkim/modunpack/internal/logging"
	"github.com/danieljhkim/modunpack/internal/state"
)

// fakeRunner implements archive.CommandRunner without spawning processes.
type fakeRunner struct {
	tools map[string]string
	run   func(name string, args []string) ([]byte, error)
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

// testConfig returns the default config pointed at fresh temp folders.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputFolder = filepath.Join(tmp, "download_mods")
	cfg.OutputFolder = filepath.Join(tmp, "unpacking_mods")
	if err := os.MkdirAll(cfg.InputFolder, 0755); err != nil {
		t.Fatalf("failed to create input folder: %v", err)
	}
	return cfg
}

func newTestEngine(cfg *config.Config, runner *fakeRunner) *Engine {
	if runner == nil {
		runner = &fakeRunner{}
	}
	clk := clock.NewStepClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 1500*time.Millisecond)
	fs := fsops.NewRealFS()
	runs := state.NewFileRunStore(fs, filepath.Join(filepath.Dir(cfg.OutputFolder), "runs"))
	return New(cfg, fs, hash.NewSHA256Hasher(), runner, clk, runs, logging.Discard())
}

// snapshot maps every path under root to its content; directories map to "/".
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			tree[filepath.ToSlash(rel)] = "/"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to snapshot %s: %v", root, err)
	}
	return tree
}
