package orchestrator

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const runIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// newRunID generates a short identifier that separates the log sections
// of consecutive runs.
func newRunID() (string, error) {
	id, err := gonanoid.Generate(runIDAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate run ID: %w", err)
	}
	return id, nil
}
