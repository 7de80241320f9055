package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/modunpack/internal/archive"
	"github.com/danieljhkim/modunpack/internal/reconcile"
)

// Run unpacks every archive of the input folder into the output folder and
// reconciles the result.
//
// Algorithm steps:
// 1. Resolve input and output folders (request overrides config)
// 2. List archives; a missing input folder aborts with ErrInputNotFound
// 3. Create the output folder
// 4. Extract archives in name order; failures are recorded, never fatal
// 5. Clean up junk and apply the transform rules
// 6. Save the run record and return the result with the reconciliation journal
func (e *Engine) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	started := e.clock.Now()
	input, output := e.folders(req)

	entries, err := e.listArchives(input)
	if err != nil {
		return nil, err
	}

	if err := e.fs.MkdirAll(output, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output folder %s: %w", output, err)
	}

	result := &RunResult{
		Input:     input,
		Output:    output,
		Archives:  entries,
		Failures:  []Failure{},
		Actions:   []reconcile.Action{},
		StartedAt: started,
	}

	extractor := e.extractor()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := extractor.Extract(ctx, entry, output); err != nil {
			result.Failures = append(result.Failures, e.recordFailure(entry, err))
			continue
		}
		result.Extracted++
		e.logger.Info("extracted archive", "archive", entry.Name)
	}

	rec := reconcile.New(e.fs, e.hasher, output, e.logger)
	if err := rec.Reconcile(e.Plan()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReconcile, err)
	}

	for _, action := range rec.Actions() {
		if action.Op == reconcile.OpOverwrite {
			result.Overwrites++
		}
		result.Actions = append(result.Actions, action)
	}
	result.FinishedAt = e.clock.Now()

	e.logger.Info("run complete",
		"archives", len(entries),
		"extracted", result.Extracted,
		"failed", len(result.Failures),
		"actions", len(result.Actions),
		"elapsed", result.Elapsed(),
	)

	// The tree is already reconciled; a lost record only costs the "last" report
	if err := e.runs.SaveLast(result.Record()); err != nil {
		e.logger.Warn("failed to save run record", "err", err)
	}

	return result, nil
}

// recordFailure logs an extraction error and converts it to a Failure.
// Invalid archives are expected and logged at info level.
func (e *Engine) recordFailure(entry archive.Entry, err error) Failure {
	kind := FailureUnexpected
	if errors.Is(err, archive.ErrInvalidArchive) {
		kind = FailureInvalid
		e.logger.Info("skipping invalid archive", "archive", entry.Name, "err", err)
	} else {
		e.logger.Error("failed to extract archive", "archive", entry.Name, "err", err)
	}

	return Failure{
		Archive: entry.Name,
		Kind:    kind,
		Error:   err.Error(),
	}
}

func (e *Engine) folders(req *RunRequest) (input, output string) {
	input, output = e.cfg.InputFolder, e.cfg.OutputFolder
	if req != nil && req.InputFolder != "" {
		input = req.InputFolder
	}
	if req != nil && req.OutputFolder != "" {
		output = req.OutputFolder
	}
	return input, output
}

// listArchives maps a missing input folder to ErrInputNotFound.
func (e *Engine) listArchives(input string) ([]archive.Entry, error) {
	entries, err := archive.ListArchives(e.fs, input)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return nil, err
	}
	return entries, nil
}
