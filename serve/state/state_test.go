package state

import (
	"errors"
	"fmt"
	"testing"
)

func TestBeginGuardsActiveRun(t *testing.T) {
	m := NewManager()
	id, ok := m.Begin()
	if !ok || id == "" {
		t.Fatalf("first Begin failed")
	}
	if _, ok := m.Begin(); ok {
		t.Fatalf("Begin must refuse while running")
	}

	m.Complete()
	if _, ok := m.Begin(); !ok {
		t.Fatalf("Begin must succeed after completion")
	}
}

func TestFailRecordsError(t *testing.T) {
	m := NewManager()
	m.Begin()
	m.Fail(errors.New("stage blew up"))

	if m.State() != StateError {
		t.Fatalf("state = %q", m.State())
	}
	s := m.GetStatus()
	if s.Error != "stage blew up" {
		t.Fatalf("error = %q", s.Error)
	}

	// A failed run must not block the next one.
	if _, ok := m.Begin(); !ok {
		t.Fatalf("Begin must succeed after error")
	}
	if m.GetStatus().Error != "" {
		t.Fatalf("error must reset on a new run")
	}
}

func TestLogRingBuffer(t *testing.T) {
	m := NewManager()
	for i := 0; i < maxLogs+20; i++ {
		m.Log("line %d", i)
	}
	s := m.GetStatus()
	if len(s.Logs) != maxLogs {
		t.Fatalf("log count = %d; want %d", len(s.Logs), maxLogs)
	}
	last := s.Logs[len(s.Logs)-1].Message
	if last != fmt.Sprintf("line %d", maxLogs+19) {
		t.Fatalf("last log = %q", last)
	}
}

func TestSetStage(t *testing.T) {
	m := NewManager()
	m.Begin()
	m.SetStage("fetch")
	if got := m.GetStatus().Stage; got != "fetch" {
		t.Fatalf("stage = %q", got)
	}
}
