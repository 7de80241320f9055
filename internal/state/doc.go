// Package state persists the outcome of modunpack runs.
//
// After every completed run the engine saves a RunRecord summarizing what
// was extracted, what failed and how the output tree was reshaped. The
// record is stored as JSON in the runs directory of the config home and
// backs the "last" command.
//
// Key concepts:
//   - RunRecord: Summary of one run, versioned by SchemaVersion
//   - FailureRecord: One archive that could not be extracted
//   - RunStore: Interface for persisting and loading the last record
package state
