package engine

import (
	"github.com/danieljhkim/modunpack/internal/archive"
)

// CheckTools reports whether the external tools needed by the configured
// formats resolve on PATH. Zip archives need no external tool.
func (e *Engine) CheckTools() []ToolStatus {
	status := ToolStatus{
		Name:    string(archive.FormatRar),
		Command: e.cfg.Rar.Command,
	}

	path, err := archive.CheckTool(e.runner, e.cfg.Rar.Command)
	if err != nil {
		status.Error = err.Error()
		e.logger.Debug("tool check failed", "tool", status.Name, "err", err)
	} else {
		status.Path = path
	}

	return []ToolStatus{status}
}
