package reconcile

// Action operation types
const (
	OpDeleteFile   = "delete_file"
	OpDeleteFolder = "delete_folder"
	OpMove         = "move"
	OpMerge        = "merge"
	OpOverwrite    = "overwrite"
)

// Action records one mutation of the output tree.
type Action struct {
	// Op is the operation type: "delete_file", "delete_folder", "move", "merge", "overwrite"
	Op string `json:"op"`

	// Path is the affected path (the source for moves and merges)
	Path string `json:"path"`

	// Target is the destination for moves, merges and overwrites
	Target string `json:"target,omitempty"`
}

// Plan is everything one reconciliation pass needs.
type Plan struct {
	// JunkFiles are deleted from the output root first
	JunkFiles []string

	// JunkFolders are deleted from the output root after JunkFiles
	JunkFolders []string

	// Version replaces {version} in rule paths
	Version string

	// Rules run in order after cleanup
	Rules []TransformRule
}
