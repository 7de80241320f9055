// Package engine provides the core logic behind modunpack commands.
//
// The engine package is the orchestration layer between CLI commands and the
// lower-level archive and reconcile packages. A run scans the input folder,
// extracts every archive into the output folder, and then reconciles the
// output tree into the canonical res_mods/<version> and mods/<version> layout.
//
// Key components:
//   - Engine: orchestrator built from a Config and its collaborators
//   - Run: the full scan, extract and reconcile pipeline
//   - Scan: archive discovery without side effects
//   - CheckTools: availability of external unpacking tools
//   - LastRun: the record saved by the most recent run
package engine

import (
	"github.com/charmbracelet/log"

	"github.com/danieljhkim/modunpack/internal/archive"
	"github.com/danieljhkim/modunpack/internal/clock"
	"github.com/danieljhkim/modunpack/internal/config"
	"github.com/danieljhkim/modunpack/internal/fsops"
	"github.com/danieljhkim/modunpack/internal/hash"
	"github.com/danieljhkim/modunpack/internal/reconcile"
	"github.com/danieljhkim/modunpack/internal/state"
)

// Engine orchestrates all modunpack operations.
// It is the main API surface called by the CLI.
type Engine struct {
	cfg    *config.Config
	fs     fsops.FS
	hasher hash.Hasher
	runner archive.CommandRunner
	clock  clock.Clock
	runs   state.RunStore
	logger *log.Logger
}

// New creates a new Engine with the given dependencies.
func New(
	cfg *config.Config,
	fs fsops.FS,
	hasher hash.Hasher,
	runner archive.CommandRunner,
	clk clock.Clock,
	runs state.RunStore,
	logger *log.Logger,
) *Engine {
	return &Engine{
		cfg:    cfg,
		fs:     fs,
		hasher: hasher,
		runner: runner,
		clock:  clk,
		runs:   runs,
		logger: logger,
	}
}

// NewFromConfig creates an Engine backed by the real filesystem and os/exec.
// Run records are kept under paths.Runs.
func NewFromConfig(cfg *config.Config, paths *config.Paths, logger *log.Logger) *Engine {
	fs := fsops.NewRealFS()
	return New(
		cfg,
		fs,
		hash.NewSHA256Hasher(),
		archive.NewExecRunner(),
		&clock.RealClock{},
		state.NewFileRunStore(fs, paths.Runs),
		logger,
	)
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Plan builds the reconciliation plan for the configured output tree.
// Rules from the configuration replace the built-in sequence.
func (e *Engine) Plan() reconcile.Plan {
	return reconcile.Plan{
		JunkFiles:   e.cfg.JunkFiles,
		JunkFolders: e.cfg.JunkFolders,
		Version:     e.cfg.Version,
		Rules:       e.rules(),
	}
}

func (e *Engine) rules() []reconcile.TransformRule {
	if len(e.cfg.Rules) == 0 {
		return reconcile.DefaultRules(reconcile.Defaults{
			VendorFolder:      e.cfg.VendorFolder,
			ModFile:           e.cfg.ModFile,
			NestedModsWrapper: e.cfg.NestedModsWrapper,
		})
	}

	rules := make([]reconcile.TransformRule, 0, len(e.cfg.Rules))
	for _, rc := range e.cfg.Rules {
		rules = append(rules, reconcile.TransformRule{
			Name:        rc.Name,
			Kind:        rc.Kind,
			Names:       rc.Names,
			Source:      rc.Source,
			Target:      rc.Target,
			When:        rc.When,
			RemoveAfter: rc.RemoveAfter,
		})
	}
	return rules
}

func (e *Engine) extractor() *archive.Extractor {
	return archive.NewExtractor(e.fs, e.runner, archive.Options{
		NameEncoding: e.cfg.ZipNameEncoding,
		RarCommand:   e.cfg.Rar.Command,
		RarArgs:      e.cfg.Rar.Args,
	}, e.logger)
}
