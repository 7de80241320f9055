package archive

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/modunpack/internal/fsops"
)

// FilterArchiveFiles keeps the names with a recognized archive suffix,
// preserving their order.
func FilterArchiveFiles(names []string) []string {
	archives := make([]string, 0, len(names))
	for _, name := range names {
		if FormatOf(name) != FormatUnsupported {
			archives = append(archives, name)
		}
	}
	return archives
}

// ListArchives lists the archives directly inside folder, sorted by name.
// Subdirectories and non-archive files are skipped. A missing folder is
// reported as ErrNotFound.
func ListArchives(fs fsops.FS, folder string) ([]Entry, error) {
	exists, err := fs.Exists(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to check folder %s: %w", folder, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: folder %s does not exist", ErrNotFound, folder)
	}

	dirEntries, err := fs.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder %s: %w", folder, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		names = append(names, de.Name())
	}

	archives := FilterArchiveFiles(names)
	entries := make([]Entry, 0, len(archives))
	for _, name := range archives {
		entries = append(entries, Entry{
			Name:   name,
			Path:   filepath.Join(folder, name),
			Format: FormatOf(name),
		})
	}
	return entries, nil
}
