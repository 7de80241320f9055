package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/danieljhkim/modunpack/internal/fsops"
	"github.com/danieljhkim/modunpack/internal/hash"
)

// Reconciler mutates one output folder. It is not safe for concurrent use;
// a run owns its output folder exclusively.
type Reconciler struct {
	fs      fsops.FS
	hasher  hash.Hasher
	logger  *log.Logger
	root    string
	actions []Action
}

// New creates a Reconciler for the output folder at root.
func New(fs fsops.FS, hasher hash.Hasher, root string, logger *log.Logger) *Reconciler {
	return &Reconciler{
		fs:     fs,
		hasher: hasher,
		logger: logger,
		root:   root,
	}
}

// Actions returns the mutations performed so far, in order.
func (r *Reconciler) Actions() []Action {
	return r.actions
}

func (r *Reconciler) record(op, path, target string) {
	r.actions = append(r.actions, Action{Op: op, Path: r.rel(path), Target: r.rel(target)})
}

// rel shortens a path for the journal; paths outside root stay absolute.
func (r *Reconciler) rel(p string) string {
	if p == "" {
		return ""
	}
	rel, err := filepath.Rel(r.root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

// Reconcile applies cleanup and then every rule of the plan, in order.
func (r *Reconciler) Reconcile(plan Plan) error {
	if err := r.Cleanup(plan.JunkFiles, plan.JunkFolders); err != nil {
		return err
	}
	return r.Apply(plan.Rules, plan.Version)
}

// Apply runs rules in declared order. All rules are validated before any of
// them touches the tree.
func (r *Reconciler) Apply(rules []TransformRule, version string) error {
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	for _, rule := range rules {
		if err := r.applyRule(rule, version); err != nil {
			return fmt.Errorf("rule %s: %w", rule.Name, err)
		}
	}
	return nil
}

func (r *Reconciler) applyRule(rule TransformRule, version string) error {
	if rule.When != "" {
		exists, err := r.fs.Exists(r.resolve(rule.When, version))
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", rule.When, err)
		}
		if !exists {
			r.logger.Debug("skipping rule, nothing to do", "rule", rule.Name, "missing", rule.When)
			return nil
		}
	}

	source := r.resolve(rule.Source, version)
	target := r.resolve(rule.Target, version)

	switch rule.Kind {
	case RuleFolders:
		if err := r.MoveFolders(rule.Names, source, target); err != nil {
			return err
		}
	case RuleFile:
		for _, name := range rule.Names {
			if err := r.MoveFile(name, source, target); err != nil {
				return err
			}
		}
	}

	if rule.RemoveAfter != "" {
		return r.removeFolder(r.resolve(rule.RemoveAfter, version))
	}
	return nil
}

// resolve turns a rule path into a filesystem path under root.
func (r *Reconciler) resolve(p, version string) string {
	p = strings.ReplaceAll(p, VersionPlaceholder, version)
	if p == "" {
		return r.root
	}
	return filepath.Join(r.root, filepath.FromSlash(p))
}

// ProcessVendorFolder unwraps the vendor folder under the output root: its
// res_mods and mods children are merged or moved to the root and the
// wrapper is deleted. A missing wrapper is a no-op.
func (r *Reconciler) ProcessVendorFolder(vendorFolder string) error {
	return r.Apply([]TransformRule{VendorRule(vendorFolder)}, "")
}

// MoveFolders moves each named folder from source into target. A folder
// that already exists in target is merged instead; a folder missing from
// source is skipped. target is created if needed.
func (r *Reconciler) MoveFolders(names []string, source, target string) error {
	if err := r.fs.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	for _, name := range names {
		srcPath := filepath.Join(source, name)
		dstPath := filepath.Join(target, name)

		exists, err := r.fs.Exists(srcPath)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", srcPath, err)
		}
		if !exists {
			r.logger.Debug("folder not present, skipping", "folder", r.rel(srcPath))
			continue
		}

		dstExists, err := r.fs.Exists(dstPath)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", dstPath, err)
		}

		if !dstExists {
			if err := r.fs.Rename(srcPath, dstPath); err != nil {
				return fmt.Errorf("failed to move %s: %w", srcPath, err)
			}
			r.record(OpMove, srcPath, dstPath)
			r.logger.Info("moved folder", "folder", name, "to", r.rel(target))
			continue
		}

		if err := r.mergeDir(srcPath, dstPath); err != nil {
			return fmt.Errorf("failed to merge %s: %w", srcPath, err)
		}
		if err := r.fs.RemoveAll(srcPath); err != nil {
			return fmt.Errorf("failed to remove merged folder %s: %w", srcPath, err)
		}
		r.record(OpMerge, srcPath, dstPath)
		r.logger.Info("merged folder", "folder", name, "into", r.rel(target))
	}

	return nil
}

// mergeDir copies the children of src into dst, descending into folders
// that exist on both sides. Files in dst are overwritten.
func (r *Reconciler) mergeDir(src, dst string) error {
	entries, err := r.fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		dstInfo, dstExists, err := r.stat(dstPath)
		if err != nil {
			return err
		}

		if entry.IsDir() && dstExists && dstInfo.IsDir() {
			if err := r.mergeDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		if dstExists {
			if err := r.noteOverwrite(srcPath, dstPath, entry.IsDir() || dstInfo.IsDir()); err != nil {
				return err
			}
		}

		if err := r.fs.Copy(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// noteOverwrite journals a destination about to be replaced. Identical
// files are not reported.
func (r *Reconciler) noteOverwrite(srcPath, dstPath string, typeChange bool) error {
	if !typeChange {
		same, err := hash.SameContent(r.hasher, srcPath, dstPath)
		if err != nil {
			return fmt.Errorf("failed to compare %s: %w", dstPath, err)
		}
		if same {
			return nil
		}
	}
	r.record(OpOverwrite, srcPath, dstPath)
	r.logger.Warn("overwriting existing file", "path", r.rel(dstPath))
	return nil
}

// MoveFile moves a single named file from source into target, creating
// target first. A missing file is skipped.
func (r *Reconciler) MoveFile(name, source, target string) error {
	if err := r.fs.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	srcPath := filepath.Join(source, name)
	exists, err := r.fs.Exists(srcPath)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", srcPath, err)
	}
	if !exists {
		r.logger.Debug("file not present, skipping", "file", r.rel(srcPath))
		return nil
	}

	dstPath := filepath.Join(target, name)
	if err := r.fs.Rename(srcPath, dstPath); err != nil {
		return fmt.Errorf("failed to move %s: %w", srcPath, err)
	}
	r.record(OpMove, srcPath, dstPath)
	r.logger.Info("moved file", "file", name, "to", r.rel(target))
	return nil
}

func (r *Reconciler) removeFolder(path string) error {
	exists, err := r.fs.Exists(path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		return nil
	}
	if err := r.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	r.record(OpDeleteFolder, path, "")
	r.logger.Info("deleted folder", "folder", r.rel(path))
	return nil
}

// stat returns file info for path, treating "not found" as a normal answer.
func (r *Reconciler) stat(path string) (os.FileInfo, bool, error) {
	info, err := r.fs.Lstat(path)
	if err == nil {
		return info, true, nil
	}
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("failed to stat %s: %w", path, err)
}
