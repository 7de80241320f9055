package reconcile

import (
	"fmt"
	"path/filepath"
)

// Cleanup deletes the junk files and then the junk folders from the output root.
func (r *Reconciler) Cleanup(files, folders []string) error {
	if err := r.DeleteFiles(files, r.root); err != nil {
		return err
	}
	return r.DeleteFolders(folders, r.root)
}

// DeleteFiles removes each named file under folder. Missing names are
// skipped, so calling it twice leaves the same tree as calling it once.
// A folder carrying one of the names is left alone.
func (r *Reconciler) DeleteFiles(names []string, folder string) error {
	for _, name := range names {
		path := filepath.Join(folder, name)

		info, exists, err := r.stat(path)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if info.IsDir() {
			r.logger.Debug("not a file, keeping", "path", r.rel(path))
			continue
		}

		if err := r.fs.Remove(path); err != nil {
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}
		r.record(OpDeleteFile, path, "")
		r.logger.Info("deleted file", "file", name)
	}
	return nil
}

// DeleteFolders removes each named folder, with its contents, under folder.
// Missing names are skipped. A file carrying one of the names is left alone.
func (r *Reconciler) DeleteFolders(names []string, folder string) error {
	for _, name := range names {
		path := filepath.Join(folder, name)

		info, exists, err := r.stat(path)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if !info.IsDir() {
			r.logger.Debug("not a folder, keeping", "path", r.rel(path))
			continue
		}

		if err := r.fs.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to delete %s: %w", path, err)
		}
		r.record(OpDeleteFolder, path, "")
		r.logger.Info("deleted folder", "folder", name)
	}
	return nil
}
