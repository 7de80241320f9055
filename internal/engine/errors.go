package engine

import "errors"

var (
	// ErrInputNotFound indicates the input folder does not exist.
	ErrInputNotFound = errors.New("input folder not found")

	// ErrReconcile indicates the output tree could not be reconciled.
	ErrReconcile = errors.New("reconciliation failed")

	// ErrNoRunRecorded indicates no run has completed yet.
	ErrNoRunRecorded = errors.New("no run recorded")
)
