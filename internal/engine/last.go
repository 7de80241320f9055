package engine

import (
	"errors"
	"os"

	"github.com/danieljhkim/modunpack/internal/state"
)

// LastRun returns the record saved by the most recent completed run.
func (e *Engine) LastRun() (*state.RunRecord, error) {
	rec, err := e.runs.LoadLast()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoRunRecorded
		}
		return nil, err
	}
	return rec, nil
}
