package archive

import "errors"

var (
	// ErrNotFound indicates the folder to scan does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArchive indicates a corrupt or unreadable archive.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrUnexpectedExtraction indicates any other extraction failure.
	ErrUnexpectedExtraction = errors.New("unexpected extraction error")

	// ErrToolNotFound indicates the external unpacking tool is not on PATH.
	ErrToolNotFound = errors.New("extraction tool not found")

	// ErrUnsupportedFormat indicates a file with no known archive format.
	ErrUnsupportedFormat = errors.New("unsupported archive format")
)
