package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const executionIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateExecutionID produces the short run identifier used when this
// binary drives a task directly instead of an orchestrator.
func GenerateExecutionID() string {
	id, err := gonanoid.Generate(executionIDAlphabet, 16)
	if err != nil {
		return gonanoid.Must(16)
	}
	return id
}
