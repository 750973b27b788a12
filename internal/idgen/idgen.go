// Package idgen generates short run identifiers, backed by nanoid. Every
// invocation gets one; it ties log lines and backups to a specific run.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the character set for the random portion of a run ID.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of random characters after the prefix.
const Length = 8

// NewRunID returns a fresh "run-" prefixed identifier.
func NewRunID() (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return "run-" + id, nil
}
