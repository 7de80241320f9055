// Package hash provides file hashing for content comparison.
//
// The reconciler hashes both sides of a file conflict during a folder merge
// so that overwrites which actually change bytes can be reported, while
// re-merging identical content stays silent.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher provides an abstraction for file hashing operations.
type Hasher interface {
	// HashFile computes the hash of the file at the given path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile computes the SHA-256 hash of the file at the given path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// SameContent reports whether the files at a and b hash to the same value.
func SameContent(h Hasher, a, b string) (bool, error) {
	ha, err := h.HashFile(a)
	if err != nil {
		return false, err
	}
	hb, err := h.HashFile(b)
	if err != nil {
		return false, err
	}
	return ha == hb, nil
}
