// pkg/util/error.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"strings"
)

// ErrorLogger accumulates validation errors while walking a nested
// config/model/instance/graph file, remembering where in that nesting
// it currently is so each error can be reported with full context
// instead of stopping at the first bad field.
type ErrorLogger struct {
	path   []string
	errors []string
}

// Push enters a named level of the hierarchy being validated, e.g. the
// name of the node or model currently being checked.
func (e *ErrorLogger) Push(name string) {
	e.path = append(e.path, name)
}

// Pop leaves the level most recently entered with Push.
func (e *ErrorLogger) Pop() {
	e.path = e.path[:len(e.path)-1]
}

func (e *ErrorLogger) location() string {
	return strings.Join(e.path, " / ")
}

// Error records err against the current path.
func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, e.location()+": "+err.Error())
}

// ErrorString is Error for a formatted message with no underlying error
// value.
func (e *ErrorLogger) ErrorString(format string, args ...interface{}) {
	e.errors = append(e.errors, e.location()+": "+fmt.Sprintf(format, args...))
}

// HaveErrors reports whether anything has been recorded.
func (e *ErrorLogger) HaveErrors() bool {
	return len(e.errors) > 0
}

// String joins every recorded error onto its own line. Callers wrap it
// in a single error to return from a loader.
func (e *ErrorLogger) String() string {
	return strings.Join(e.errors, "\n")
}

// CurrentDepth reports how many Push calls are currently outstanding.
// A nil receiver is at depth 0.
func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.path)
}
