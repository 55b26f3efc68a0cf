// Package schema parses the YAML documents that make up a conversational
// project: definition files (domain), NLU example files, and the two flow
// flavors (stories and rules). Parsing is lenient about unknown fields and
// strict only about the shapes the validator actually consumes.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseError reports a file that could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}
