package ui

import (
	"strings"
	"testing"

	"vesszo/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"a.txt", "b.txt"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.txt", Stage: driver.StageLoad, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "loading" {
		t.Fatalf("status = %q, want loading", got)
	}
	m.applyEvent(driver.Event{File: "a.txt", Stage: driver.StageCheck, Status: driver.StatusDone, Findings: 3})
	m.applyEvent(driver.Event{File: "b.txt", Stage: driver.StageLoad, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.txt", Stage: driver.StageCheck, Status: driver.StatusDone})

	if m.items[0].status != "done" || m.items[0].findings != 3 {
		t.Errorf("a.txt = %+v", m.items[0])
	}
	if m.items[1].status != "error" {
		t.Errorf("b.txt = %+v", m.items[1])
	}

	view := m.View()
	for _, want := range []string{"a.txt", "b.txt", "done", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestStageLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageLoad, driver.StatusQueued, "queued"},
		{driver.StageLoad, driver.StatusWorking, "loading"},
		{driver.StageCheck, driver.StatusWorking, "checking"},
		{driver.StageCheck, driver.StatusError, "error"},
		{driver.Stage("other"), driver.StatusWorking, ""},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghijklmnop", 10); got != "abcd..." {
		t.Errorf("got %q", got)
	}
}
