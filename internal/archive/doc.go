// Package archive finds downloaded mod archives and unpacks them.
//
// Scanning keeps only names ending in .zip or .rar (case-sensitive, the
// way the download stage names its files). Zip archives are read natively;
// rar archives are handed to an external tool such as unrar because the
// format is not reimplemented here.
//
// Extraction failures are classified so callers can keep going:
//   - ErrInvalidArchive: the file is corrupt or not an archive at all
//   - ErrUnexpectedExtraction: anything else (I/O errors, missing tool)
package archive
