package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/danieljhkim/modunpack/internal/fsops"
)

// Placeholders expanded in Options.RarArgs.
const (
	PlaceholderArchive = "{ARCHIVE}"
	PlaceholderOutDir  = "{OUTDIR}"
)

// Options configures an Extractor.
type Options struct {
	// NameEncoding decodes zip entry names stored without the UTF-8 flag
	// (cp437, cp866 or none).
	NameEncoding string

	// RarCommand is the external tool used for .rar archives.
	RarCommand string

	// RarArgs are the tool arguments; see PlaceholderArchive and PlaceholderOutDir.
	RarArgs []string
}

// Extractor unpacks archives into a destination folder. Files from later
// archives overwrite files from earlier ones at the same path.
type Extractor struct {
	fs     fsops.FS
	runner CommandRunner
	opts   Options
	logger *log.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor(fs fsops.FS, runner CommandRunner, opts Options, logger *log.Logger) *Extractor {
	return &Extractor{
		fs:     fs,
		runner: runner,
		opts:   opts,
		logger: logger,
	}
}

// Extract unpacks a single archive into dest. Returned errors wrap either
// ErrInvalidArchive or ErrUnexpectedExtraction.
func (x *Extractor) Extract(ctx context.Context, entry Entry, dest string) error {
	if err := x.fs.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("%w: %s: failed to create destination: %w", ErrUnexpectedExtraction, entry.Name, err)
	}

	switch entry.Format {
	case FormatZip:
		return x.extractZip(entry, dest)
	case FormatRar:
		return x.extractRar(ctx, entry, dest)
	default:
		return fmt.Errorf("%w: %s: %w", ErrUnexpectedExtraction, entry.Name, ErrUnsupportedFormat)
	}
}

// extractZip unpacks a zip archive with archive/zip.
func (x *Extractor) extractZip(entry Entry, dest string) error {
	reader, err := zip.OpenReader(entry.Path)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && reader != nil) {
		return classifyZipError(entry.Name, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		name := decodeName(file.Name, file.NonUTF8, x.opts.NameEncoding)
		relPath := filepath.FromSlash(strings.TrimSuffix(name, "/"))

		// Entries must stay inside dest
		if err := x.fs.ValidateRelPath(relPath); err != nil {
			x.logger.Warn("skipping unsafe archive entry", "archive", entry.Name, "entry", name, "reason", err)
			continue
		}
		target := filepath.Join(dest, relPath)

		if file.FileInfo().IsDir() {
			if err := x.fs.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("%w: %s: failed to create %s: %w", ErrUnexpectedExtraction, entry.Name, name, err)
			}
			continue
		}

		if err := x.extractZipFile(file, target); err != nil {
			return classifyZipError(entry.Name, fmt.Errorf("%s: %w", name, err))
		}
		x.logger.Debug("extracted entry", "archive", entry.Name, "entry", name)
	}

	return nil
}

// extractZipFile writes one zip entry to target.
func (x *Extractor) extractZipFile(file *zip.File, target string) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = rc.Close()
	}()

	perm := file.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	return x.fs.WriteFrom(target, rc, perm)
}

// classifyZipError maps archive/zip failures to ErrInvalidArchive and
// everything else to ErrUnexpectedExtraction.
func classifyZipError(name string, err error) error {
	if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrAlgorithm) || errors.Is(err, zip.ErrChecksum) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidArchive, name, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnexpectedExtraction, name, err)
}

// extractRar unpacks a rar archive with the configured external tool.
// A tool that runs but fails marks the archive invalid.
func (x *Extractor) extractRar(ctx context.Context, entry Entry, dest string) error {
	bin, err := CheckTool(x.runner, x.opts.RarCommand)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnexpectedExtraction, entry.Name, err)
	}

	args := ExpandArgs(x.opts.RarArgs, entry.Path, dest)
	x.logger.Debug("running rar tool", "archive", entry.Name, "command", bin, "args", args)

	out, err := x.runner.Run(ctx, bin, args)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s: %w", ErrInvalidArchive, entry.Name, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrUnexpectedExtraction, entry.Name, err)
	}
	if len(out) > 0 {
		x.logger.Debug("rar tool output", "archive", entry.Name, "output", strings.TrimSpace(string(out)))
	}

	return nil
}

// ExpandArgs substitutes the archive path and output folder into args.
func ExpandArgs(args []string, archivePath, outDir string) []string {
	expanded := make([]string, len(args))
	for i, arg := range args {
		arg = strings.ReplaceAll(arg, PlaceholderArchive, archivePath)
		arg = strings.ReplaceAll(arg, PlaceholderOutDir, outDir)
		expanded[i] = arg
	}
	return expanded
}

// CheckTool resolves command on PATH, wrapping failures in ErrToolNotFound.
func CheckTool(runner CommandRunner, command string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("%w: no command configured", ErrToolNotFound)
	}
	bin, err := runner.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrToolNotFound, command, err)
	}
	return bin, nil
}
