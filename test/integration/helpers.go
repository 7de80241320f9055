package integration

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/modunpack/internal/archive"
	"github.com/danieljhkim/modunpack/internal/clock"
	"github.com/danieljhkim/modunpack/internal/config"
	"github.com/danieljhkim/modunpack/internal/engine"
	"github.com/danieljhkim/modunpack/internal/fsops"
	"github.com/danieljhkim/modunpack/internal/hash"
	"github.com/danieljhkim/modunpack/internal/logging"
	"github.com/danieljhkim/modunpack/internal/state"
)

// testFS is an in-memory fsops.FS. Paths are cleaned slash or OS paths;
// a path is a directory when it appears in dirs.
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// put stores a file and creates its parents.
func (fs *testFS) put(path, content string) {
	path = filepath.Clean(path)
	_ = fs.MkdirAll(filepath.Dir(path), 0755)
	fs.files[path] = []byte(content)
}

// tree returns every path below root with file content, directories as "/".
func (fs *testFS) tree(root string) map[string]string {
	root = filepath.Clean(root)
	out := make(map[string]string)
	for p := range fs.dirs {
		if rel, ok := under(root, p); ok {
			out[rel] = "/"
		}
	}
	for p, data := range fs.files {
		if rel, ok := under(root, p); ok {
			out[rel] = string(data)
		}
	}
	return out
}

func under(root, p string) (string, bool) {
	prefix := root + string(filepath.Separator)
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	return filepath.ToSlash(strings.TrimPrefix(p, prefix)), true
}

func (fs *testFS) Exists(path string) (bool, error) {
	path = filepath.Clean(path)
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) Lstat(path string) (os.FileInfo, error) {
	path = filepath.Clean(path)
	if fs.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), isDir: true, mode: os.ModeDir | 0755}, nil
	}
	if data, ok := fs.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: 0644}, nil
	}
	return nil, &os.PathError{Op: "lstat", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) ReadDir(path string) ([]os.DirEntry, error) {
	path = filepath.Clean(path)
	if !fs.dirs[path] {
		return nil, &os.PathError{Op: "readdir", Path: path, Err: os.ErrNotExist}
	}

	var entries []os.DirEntry
	for p := range fs.dirs {
		if filepath.Dir(p) == path && p != path {
			info, _ := fs.Lstat(p)
			entries = append(entries, dirEntry(info))
		}
	}
	for p := range fs.files {
		if filepath.Dir(p) == path {
			info, _ := fs.Lstat(p)
			entries = append(entries, dirEntry(info))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func dirEntry(info os.FileInfo) os.DirEntry {
	return fs.FileInfoToDirEntry(info)
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	path = filepath.Clean(path)
	for p := path; ; p = filepath.Dir(p) {
		if _, isFile := fs.files[p]; isFile {
			return &os.PathError{Op: "mkdir", Path: p, Err: fmt.Errorf("not a directory")}
		}
		fs.dirs[p] = true
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	return nil
}

func (fs *testFS) Remove(path string) error {
	path = filepath.Clean(path)
	if _, ok := fs.files[path]; ok {
		delete(fs.files, path)
		return nil
	}
	if fs.dirs[path] {
		entries, _ := fs.ReadDir(path)
		if len(entries) > 0 {
			return &os.PathError{Op: "remove", Path: path, Err: fmt.Errorf("directory not empty")}
		}
		delete(fs.dirs, path)
		return nil
	}
	return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) RemoveAll(path string) error {
	path = filepath.Clean(path)
	delete(fs.files, path)
	delete(fs.dirs, path)

	pathPrefix := path + string(filepath.Separator)
	for p := range fs.files {
		if strings.HasPrefix(p, pathPrefix) {
			delete(fs.files, p)
		}
	}
	for p := range fs.dirs {
		if strings.HasPrefix(p, pathPrefix) {
			delete(fs.dirs, p)
		}
	}
	return nil
}

func (fs *testFS) Rename(oldpath, newpath string) error {
	oldpath, newpath = filepath.Clean(oldpath), filepath.Clean(newpath)
	if ok, _ := fs.Exists(oldpath); !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrNotExist}
	}
	if !fs.dirs[filepath.Dir(newpath)] {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrNotExist}
	}

	moved := make(map[string][]byte)
	movedDirs := make(map[string]bool)
	oldPrefix := oldpath + string(filepath.Separator)
	for p, data := range fs.files {
		if p == oldpath || strings.HasPrefix(p, oldPrefix) {
			moved[newpath+strings.TrimPrefix(p, oldpath)] = data
		}
	}
	for p := range fs.dirs {
		if p == oldpath || strings.HasPrefix(p, oldPrefix) {
			movedDirs[newpath+strings.TrimPrefix(p, oldpath)] = true
		}
	}

	_ = fs.RemoveAll(oldpath)
	_ = fs.RemoveAll(newpath)
	for p, data := range moved {
		fs.files[p] = data
	}
	for p := range movedDirs {
		fs.dirs[p] = true
	}
	return nil
}

func (fs *testFS) Copy(src, dst string) error {
	src, dst = filepath.Clean(src), filepath.Clean(dst)
	if data, ok := fs.files[src]; ok {
		_ = fs.RemoveAll(dst)
		fs.files[dst] = append([]byte(nil), data...)
		return nil
	}
	if !fs.dirs[src] {
		return &os.PathError{Op: "copy", Path: src, Err: os.ErrNotExist}
	}

	if _, isFile := fs.files[dst]; isFile {
		delete(fs.files, dst)
	}
	fs.dirs[dst] = true
	entries, _ := fs.ReadDir(src)
	for _, e := range entries {
		if err := fs.Copy(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (fs *testFS) WriteFrom(path string, r io.Reader, perm os.FileMode) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	path = filepath.Clean(path)
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	_ = fs.RemoveAll(path)
	fs.files[path] = data
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[filepath.Clean(path)]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) ValidateRelPath(relPath string) error {
	return fsops.NewRealFS().ValidateRelPath(relPath)
}

// testHasher hashes testFS file contents.
type testHasher struct {
	fs *testFS
}

func (h *testHasher) HashFile(path string) (string, error) {
	data, err := h.fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

var (
	_ fsops.FS    = (*testFS)(nil)
	_ hash.Hasher = (*testHasher)(nil)
)

// mockFileInfo implements os.FileInfo
type mockFileInfo struct {
	name  string
	size  int64
	mode  os.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// testRunner stands in for the rar tool: it "extracts" a fixed file set
// into the output folder named by the last argument.
type testRunner struct {
	files map[string]string
}

func (r *testRunner) LookPath(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

func (r *testRunner) Run(ctx context.Context, name string, args []string) ([]byte, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no arguments")
	}
	outDir := strings.TrimSuffix(args[len(args)-1], "/")
	for rel, content := range r.files {
		path := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, err
		}
	}
	return []byte("All OK"), nil
}

var _ archive.CommandRunner = (*testRunner)(nil)

// setupTestEngine builds an engine over real temp folders with the default
// configuration.
func setupTestEngine(t *testing.T, runner archive.CommandRunner) (*engine.Engine, *config.Config) {
	t.Helper()

	tmp := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.InputFolder = filepath.Join(tmp, "download_mods")
	cfg.OutputFolder = filepath.Join(tmp, "unpacking_mods")
	if err := os.MkdirAll(cfg.InputFolder, 0755); err != nil {
		t.Fatalf("failed to create input folder: %v", err)
	}

	if runner == nil {
		runner = &testRunner{}
	}
	clk := clock.NewStepClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.Second)
	realFS := fsops.NewRealFS()
	runs := state.NewFileRunStore(realFS, filepath.Join(tmp, "runs"))
	eng := engine.New(cfg, realFS, hash.NewSHA256Hasher(), runner, clk, runs, logging.Discard())
	return eng, cfg
}

// diskTree maps every path under root to its content; directories map to "/".
func diskTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			out[filepath.ToSlash(rel)] = "/"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s: %v", root, err)
	}
	return out
}

// diffTrees describes the differences between two trees, or "" if equal.
func diffTrees(got, want map[string]string) string {
	var b bytes.Buffer
	keys := make([]string, 0, len(got)+len(want))
	for k := range got {
		keys = append(keys, k)
	}
	for k := range want {
		if _, ok := got[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		g, gok := got[k]
		w, wok := want[k]
		switch {
		case !wok:
			fmt.Fprintf(&b, "  unexpected %s\n", k)
		case !gok:
			fmt.Fprintf(&b, "  missing %s\n", k)
		case g != w:
			fmt.Fprintf(&b, "  %s = %q, want %q\n", k, g, w)
		}
	}
	return b.String()
}
