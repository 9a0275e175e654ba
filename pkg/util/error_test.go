// pkg/util/error_test.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorLoggerAccumulatesWithHierarchy(t *testing.T) {
	var el ErrorLogger
	if el.HaveErrors() {
		t.Fatal("empty logger should have no errors")
	}

	el.Push("nodes")
	el.Push("gateA")
	el.Error(errors.New("duplicate vertex name"))
	el.Pop()
	el.Push("gateB")
	el.ErrorString("bad kind %q", "moon")
	el.Pop()
	el.Pop()

	if !el.HaveErrors() {
		t.Fatal("expected accumulated errors")
	}
	s := el.String()
	if !strings.Contains(s, "nodes / gateA: duplicate vertex name") {
		t.Errorf("String() = %q, missing the gateA entry", s)
	}
	if !strings.Contains(s, `nodes / gateB: bad kind "moon"`) {
		t.Errorf("String() = %q, missing the gateB entry", s)
	}
}

func TestErrorLoggerNilReceiverCurrentDepth(t *testing.T) {
	var el *ErrorLogger
	if el.CurrentDepth() != 0 {
		t.Errorf("CurrentDepth() on a nil logger = %d, want 0", el.CurrentDepth())
	}
}
