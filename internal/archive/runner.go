package archive

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner runs external unpacking tools.
type CommandRunner interface {
	// LookPath resolves a command name to an executable path.
	LookPath(file string) (string, error)

	// Run executes name with args and returns its combined output. A process
	// that starts but exits non-zero is reported as *ExitError.
	Run(ctx context.Context, name string, args []string) ([]byte, error)
}

// ExitError reports a tool that ran and exited with a non-zero status.
type ExitError struct {
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("exit status %d", e.Code)
	if out := strings.TrimSpace(e.Output); out != "" {
		lines := strings.Split(out, "\n")
		msg += ": " + strings.TrimSpace(lines[len(lines)-1])
	}
	return msg
}

// ExecRunner implements CommandRunner with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// LookPath resolves file on PATH.
func (r *ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes the command and collects stdout and stderr together.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, &ExitError{Code: exitErr.ExitCode(), Output: string(out)}
		}
		return out, err
	}
	return out, nil
}
