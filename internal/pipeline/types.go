// Package pipeline splits a raw input line into pipeline stages and parses
// each stage's trailing redirection operators.
package pipeline

import "errors"

// ErrEmptyPipelineStage is returned when a pipe splits the line into a
// leading, trailing, or adjacent empty stage (e.g. "| foo", "foo |",
// "foo || bar").
var ErrEmptyPipelineStage = errors.New("empty pipeline stage")

// ErrMissingCommand is returned when a stage's argv is empty once its
// redirection operators have been stripped out.
var ErrMissingCommand = errors.New("missing command")

// RedirectMode selects whether a redirection truncates or appends to its
// target file.
type RedirectMode int

const (
	RedirectTruncate RedirectMode = iota
	RedirectAppend
)

// Redirect names a target file and the open mode to use for it.
type Redirect struct {
	Path string
	Mode RedirectMode
}

// Stage is one command position in a pipeline: a resolved argument vector
// plus whichever stdout/stderr redirections the raw tokens carried.
type Stage struct {
	Argv        []string
	StdoutRedir *Redirect
	StderrRedir *Redirect
}
