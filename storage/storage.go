// Package storage implements the key-value stores nova persists its state in.
//
// Every store holds opaque byte values under string keys and returns
// ErrNotFound for keys that were never written.
package storage

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// ErrInvalidKey is returned for keys that cannot be stored safely.
var ErrInvalidKey = errors.New("invalid key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// checkKey rejects keys that would not map to a plain file name.
func checkKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
