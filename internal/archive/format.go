package archive

import "strings"

// Format is the archive type inferred from a file name.
type Format string

const (
	FormatZip         Format = "zip"
	FormatRar         Format = "rar"
	FormatUnsupported Format = "unsupported"
)

// suffixes maps recognized file suffixes to their format.
var suffixes = []struct {
	suffix string
	format Format
}{
	{".zip", FormatZip},
	{".rar", FormatRar},
}

// FormatOf infers the archive format from a file name. The match is
// case-sensitive.
func FormatOf(name string) Format {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.format
		}
	}
	return FormatUnsupported
}

// Entry is an archive found in the input folder.
type Entry struct {
	// Name is the file name within the input folder
	Name string `json:"name"`

	// Path is the full path to the archive
	Path string `json:"path"`

	Format Format `json:"format"`
}
