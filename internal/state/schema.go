package state

import "time"

// SchemaVersion is the RunRecord layout written by this build.
const SchemaVersion = 1

// RunRecord summarizes one completed run.
type RunRecord struct {
	// SchemaVersion is the layout version the record was written with
	SchemaVersion int `json:"schemaVersion"`

	// Input is the folder the archives were read from
	Input string `json:"input"`

	// Output is the reconciled folder
	Output string `json:"output"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// Archives is the number of archives found in Input
	Archives int `json:"archives"`

	// Extracted is the number of archives unpacked without error
	Extracted int `json:"extracted"`

	Failures []FailureRecord `json:"failures"`

	// Actions is the number of mutations the reconciler journaled
	Actions int `json:"actions"`

	// Overwrites counts merge conflicts that replaced differing content
	Overwrites int `json:"overwrites"`
}

// FailureRecord describes an archive that could not be extracted.
type FailureRecord struct {
	Archive string `json:"archive"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}

// NewRunRecord creates an empty RunRecord for the given folders.
func NewRunRecord(input, output string) *RunRecord {
	return &RunRecord{
		SchemaVersion: SchemaVersion,
		Input:         input,
		Output:        output,
		Failures:      []FailureRecord{},
	}
}
