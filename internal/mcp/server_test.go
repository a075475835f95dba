package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/oodakit/internal/audit"
	"github.com/ppiankov/oodakit/internal/registry"
)

func newTestServer(t *testing.T, journal string) *Server {
	t.Helper()
	s, err := New(Config{JournalPath: journal})
	if err != nil {
		t.Fatalf("failed to create MCP server: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func intPtr(v int) *int { return &v }

func TestEscalationLevel(t *testing.T) {
	s := newTestServer(t, "")
	ctx := context.Background()

	tests := []struct {
		name      string
		in        EscalationInput
		level     string
		next      string
		remaining int
		crossing  bool
		posture   string
	}{
		{"routine", EscalationInput{Index: 0}, "ROUTINE", "POSTURING", 3, false, "PEACETIME"},
		{"boundary", EscalationInput{Index: 10, Previous: intPtr(9)}, "CONFRONTATION", "CRISIS", 5, true, "ELEVATED"},
		{"same rung", EscalationInput{Index: 12, Previous: intPtr(10)}, "CONFRONTATION", "CRISIS", 3, false, "ELEVATED"},
		{"top", EscalationInput{Index: 40}, "CONFLICT", "", 0, false, "WEAPONS_FREE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, out, err := s.handleEscalationLevel(ctx, &mcpsdk.CallToolRequest{}, tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != nil && result.IsError {
				t.Fatalf("unexpected error result: %s", out.Error)
			}
			if out.Level != tt.level || out.NextLevel != tt.next || out.Remaining != tt.remaining {
				t.Errorf("got %s next=%s remaining=%d, want %s next=%s remaining=%d",
					out.Level, out.NextLevel, out.Remaining, tt.level, tt.next, tt.remaining)
			}
			if out.Crossing != tt.crossing {
				t.Errorf("crossing = %v, want %v", out.Crossing, tt.crossing)
			}
			if out.MinimumPosture != tt.posture {
				t.Errorf("minimum posture = %s, want %s", out.MinimumPosture, tt.posture)
			}
		})
	}
}

func TestEscalationLevelRejectsNegative(t *testing.T) {
	s := newTestServer(t, "")
	result, out, err := s.handleEscalationLevel(context.Background(), &mcpsdk.CallToolRequest{}, EscalationInput{Index: -1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected IsError result for negative index")
	}
	if !strings.Contains(out.Error, "non-negative") {
		t.Errorf("error = %q", out.Error)
	}
}

func TestROECheck(t *testing.T) {
	s := newTestServer(t, "")
	ctx := context.Background()

	tests := []struct {
		posture  string
		index    int
		exceeded bool
		max      int
	}{
		{"PEACETIME", 6, false, 6},
		{"peacetime", 7, true, 6},
		{"ELEVATED", 16, true, 15},
		{"WEAPONS_FREE", 500, false, 999},
	}
	for _, tt := range tests {
		result, out, err := s.handleROECheck(ctx, &mcpsdk.CallToolRequest{}, ROECheckInput{Posture: tt.posture, Index: tt.index})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != nil && result.IsError {
			t.Fatalf("%s: unexpected error result: %s", tt.posture, out.Error)
		}
		if out.Exceeded != tt.exceeded || out.MaxEscalation != tt.max {
			t.Errorf("%s@%d: exceeded=%v max=%d, want %v %d",
				tt.posture, tt.index, out.Exceeded, out.MaxEscalation, tt.exceeded, tt.max)
		}
	}

	result, out, err := s.handleROECheck(ctx, &mcpsdk.CallToolRequest{}, ROECheckInput{Posture: "DEFCON", Index: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError || out.Error == "" {
		t.Fatal("expected IsError result for unknown posture")
	}
}

func TestValidateScores(t *testing.T) {
	s := newTestServer(t, "")
	ctx := context.Background()

	result, out, err := s.handleValidateScores(ctx, &mcpsdk.CallToolRequest{}, ScoresInput{
		Blue: map[string]int{"impact": 2, "political": -1},
		Red:  map[string]int{"escalation": 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatalf("unexpected error result: %v", out.Errors)
	}
	if !out.Valid || out.BlueTotal != 1 || out.RedTotal != 3 {
		t.Errorf("got %+v", out)
	}

	result, out, err = s.handleValidateScores(ctx, &mcpsdk.CallToolRequest{}, ScoresInput{
		Blue: map[string]int{"impact": 4},
		Red:  map[string]int{"morale": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected IsError result for invalid deltas")
	}
	if out.Valid || len(out.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", out.Errors)
	}
	if !strings.HasPrefix(out.Errors[0], "BLUE: ") || !strings.HasPrefix(out.Errors[1], "RED: ") {
		t.Errorf("errors not attributed to sides: %v", out.Errors)
	}
}

func TestValidateRAIRegistry(t *testing.T) {
	s := newTestServer(t, "")
	_, out, err := s.handleValidateRAI(context.Background(), &mcpsdk.CallToolRequest{}, RAIInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Demos != 5 {
		t.Errorf("demos = %d, want 5", out.Demos)
	}
	if out.Passed || len(out.Warnings) != 2 {
		t.Errorf("expected the two has_hitl warnings, got %v", out.Warnings)
	}
}

func TestValidateRAIDemoAndFraming(t *testing.T) {
	s := newTestServer(t, "")
	ctx := context.Background()

	_, out, err := s.handleValidateRAI(ctx, &mcpsdk.CallToolRequest{}, RAIInput{
		DemoID: "demo1_living_brief",
		Text:   "The planner directs the escort and Orders a blockade; it directs again.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Demos != 1 || len(out.Warnings) != 0 {
		t.Errorf("demo1_living_brief should pass registry checks, got %v", out.Warnings)
	}
	if len(out.Framing) != 2 || out.Passed {
		t.Errorf("expected 2 framing warnings, got %v", out.Framing)
	}

	_, _, err = s.handleValidateRAI(ctx, &mcpsdk.CallToolRequest{}, RAIInput{DemoID: "demo99"})
	if !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidationsAreJournaled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	s := newTestServer(t, path)
	ctx := context.Background()

	if _, _, err := s.handleValidateScores(ctx, &mcpsdk.CallToolRequest{}, ScoresInput{Blue: map[string]int{"impact": 1}}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.handleValidateRAI(ctx, &mcpsdk.CallToolRequest{}, RAIInput{DemoID: "demo2_grayzone_rbw"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	res, err := audit.Replay(path, audit.ReplayFilter{Kind: audit.KindValidation})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("expected 2 validation entries, got %d", len(res.Entries))
	}
	if res.Entries[0].Subject != "scores" || res.Entries[0].Decision != "pass" {
		t.Errorf("first entry = %+v", res.Entries[0])
	}
	if res.Entries[1].Subject != "rai:demo2_grayzone_rbw" || res.Entries[1].Decision != "warn" {
		t.Errorf("second entry = %+v", res.Entries[1])
	}

	if v := audit.Verify(path); !v.Valid {
		t.Errorf("journal chain broken: %+v", v)
	}
}
