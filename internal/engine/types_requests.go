package engine

// RunRequest represents a request to unpack and reconcile mods.
type RunRequest struct {
	// InputFolder overrides the configured input folder when set
	InputFolder string

	// OutputFolder overrides the configured output folder when set
	OutputFolder string
}

// ScanRequest represents a request to list the archives of an input folder.
type ScanRequest struct {
	// InputFolder overrides the configured input folder when set
	InputFolder string
}
