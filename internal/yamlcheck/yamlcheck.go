// Package yamlcheck reports whether a config buffer is well-formed YAML.
// It is a local hint only; the service remains the authority on validity.
package yamlcheck

import (
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Status is the outcome of a local check
type Status int

const (
	StatusEmpty Status = iota
	StatusOK
	StatusError
)

// Result describes one check
type Result struct {
	Status    Status
	Documents int
	Err       error
}

// Badge returns the short label shown next to an editor
func (r Result) Badge() string {
	switch r.Status {
	case StatusOK:
		return "yaml ok"
	case StatusError:
		return "yaml error"
	}
	return "empty"
}

// Message returns the parser error, if any
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Check parses every document in text
func Check(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Status: StatusEmpty}
	}

	decoder := yaml.NewDecoder(strings.NewReader(text))
	documents := 0
	for {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{Status: StatusError, Documents: documents, Err: err}
		}
		documents++
	}

	return Result{Status: StatusOK, Documents: documents}
}
