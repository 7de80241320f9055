package engine

import (
	"time"

	"github.com/danieljhkim/modunpack/internal/archive"
	"github.com/danieljhkim/modunpack/internal/reconcile"
	"github.com/danieljhkim/modunpack/internal/state"
)

// Failure kinds
const (
	FailureInvalid    = "invalid"
	FailureUnexpected = "unexpected"
)

// RunResult represents the outcome of a full run.
type RunResult struct {
	// Input is the folder the archives were read from
	Input string `json:"input"`

	// Output is the reconciled folder
	Output string `json:"output"`

	// Archives are the archives found in Input, in extraction order
	Archives []archive.Entry `json:"archives"`

	// Extracted is the number of archives extracted without error
	Extracted int `json:"extracted"`

	// Failures lists archives that could not be extracted
	Failures []Failure `json:"failures"`

	// Actions is the reconciliation journal
	Actions []reconcile.Action `json:"actions"`

	// Overwrites counts merge conflicts that replaced differing content
	Overwrites int `json:"overwrites"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Elapsed returns how long the run took.
func (r *RunResult) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Record summarizes the result for the run store.
func (r *RunResult) Record() *state.RunRecord {
	rec := state.NewRunRecord(r.Input, r.Output)
	rec.StartedAt = r.StartedAt
	rec.FinishedAt = r.FinishedAt
	rec.Archives = len(r.Archives)
	rec.Extracted = r.Extracted
	rec.Actions = len(r.Actions)
	rec.Overwrites = r.Overwrites
	for _, f := range r.Failures {
		rec.Failures = append(rec.Failures, state.FailureRecord{
			Archive: f.Archive,
			Kind:    f.Kind,
			Error:   f.Error,
		})
	}
	return rec
}

// Failure records one archive that could not be extracted.
type Failure struct {
	// Archive is the archive base name
	Archive string `json:"archive"`

	// Kind is FailureInvalid or FailureUnexpected
	Kind string `json:"kind"`

	Error string `json:"error"`
}

// ScanResult lists the archives of an input folder.
type ScanResult struct {
	Input    string          `json:"input"`
	Archives []archive.Entry `json:"archives"`
}

// ToolStatus reports whether an external tool can be found.
type ToolStatus struct {
	// Name is the archive format the tool serves
	Name string `json:"name"`

	// Command is the configured command
	Command string `json:"command"`

	// Path is the resolved executable, empty when missing
	Path string `json:"path,omitempty"`

	// Error explains why the tool is unavailable
	Error string `json:"error,omitempty"`
}

// OK reports whether the tool was found.
func (s ToolStatus) OK() bool {
	return s.Error == ""
}
