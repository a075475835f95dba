package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/rai"
	"github.com/ppiankov/oodakit/internal/registry"
	"github.com/ppiankov/oodakit/internal/scoring"
)

// --- Input/Output types ---

// EscalationInput defines parameters for the oodakit_escalation_level tool.
type EscalationInput struct {
	Index    int  `json:"index" jsonschema:"cumulative escalation index (non-negative)"`
	Previous *int `json:"previous,omitempty" jsonschema:"index before the move, to detect a threshold crossing"`
}

// EscalationOutput describes where an index sits on the ladder.
type EscalationOutput struct {
	Index          int    `json:"index"`
	Level          string `json:"level,omitempty"`
	LevelNumber    int    `json:"level_number"`
	Threshold      int    `json:"threshold"`
	Color          string `json:"color,omitempty"`
	NextLevel      string `json:"next_level,omitempty"`
	Remaining      int    `json:"remaining,omitempty"`
	Crossing       bool   `json:"crossing"`
	PreviousLevel  string `json:"previous_level,omitempty"`
	MinimumPosture string `json:"minimum_posture,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ROECheckInput defines parameters for the oodakit_roe_check tool.
type ROECheckInput struct {
	Posture string `json:"posture" jsonschema:"ROE posture (PEACETIME/ELEVATED/WEAPONS_FREE)"`
	Index   int    `json:"index" jsonschema:"cumulative escalation index"`
}

// ROECheckOutput contains the ROE verdict.
type ROECheckOutput struct {
	Posture        string `json:"posture"`
	MaxEscalation  int    `json:"max_escalation"`
	Index          int    `json:"index"`
	Level          string `json:"level,omitempty"`
	Exceeded       bool   `json:"exceeded"`
	MinimumPosture string `json:"minimum_posture,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ScoresInput defines parameters for the oodakit_validate_scores tool.
type ScoresInput struct {
	Blue map[string]int `json:"blue,omitempty" jsonschema:"BLUE delta keyed by dimension (impact/escalation/communication/political/resource)"`
	Red  map[string]int `json:"red,omitempty" jsonschema:"RED delta keyed by dimension"`
}

// ScoresOutput lists every problem found in the deltas.
type ScoresOutput struct {
	Valid     bool     `json:"valid"`
	Errors    []string `json:"errors,omitempty"`
	BlueTotal int      `json:"blue_total"`
	RedTotal  int      `json:"red_total"`
}

// RAIInput defines parameters for the oodakit_validate_rai tool.
type RAIInput struct {
	DemoID string `json:"demo_id,omitempty" jsonschema:"validate one demo (e.g. demo2); omit for the whole registry"`
	Text   string `json:"text,omitempty" jsonschema:"agent output to check for directive framing"`
}

// RAIOutput contains the RAI verdict.
type RAIOutput struct {
	Passed   bool     `json:"passed"`
	Demos    int      `json:"demos"`
	Warnings []string `json:"warnings,omitempty"`
	Framing  []string `json:"framing,omitempty"`
}

// --- Handlers ---

func (s *Server) handleEscalationLevel(ctx context.Context, req *mcpsdk.CallToolRequest, input EscalationInput) (*mcpsdk.CallToolResult, EscalationOutput, error) {
	out := EscalationOutput{Index: input.Index}
	if err := escalation.CheckIndex(input.Index); err != nil {
		out.Error = err.Error()
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	step := s.ladder.Lookup(input.Index)
	out.Level = step.Name.String()
	out.LevelNumber = step.Level
	out.Threshold = step.Threshold
	out.Color = step.Color
	out.MinimumPosture = escalation.MinimumPosture(input.Index).Name.String()

	if next, remaining, ok := s.ladder.Next(input.Index); ok {
		out.NextLevel = next.Name.String()
		out.Remaining = remaining
	}
	if input.Previous != nil {
		from, _, crossed := s.ladder.Crossing(*input.Previous, input.Index)
		out.Crossing = crossed
		out.PreviousLevel = from.Name.String()
	}
	return nil, out, nil
}

func (s *Server) handleROECheck(ctx context.Context, req *mcpsdk.CallToolRequest, input ROECheckInput) (*mcpsdk.CallToolResult, ROECheckOutput, error) {
	out := ROECheckOutput{Posture: input.Posture, Index: input.Index}
	p, err := escalation.PostureByLabel(strings.ToUpper(strings.TrimSpace(input.Posture)))
	if err != nil {
		out.Error = err.Error()
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	out.Posture = p.Name.String()
	out.MaxEscalation = p.WireMax()
	out.Exceeded = p.Exceeded(input.Index)
	out.Level = s.ladder.Lookup(input.Index).Name.String()
	out.MinimumPosture = escalation.MinimumPosture(input.Index).Name.String()
	return nil, out, nil
}

func (s *Server) handleValidateScores(ctx context.Context, req *mcpsdk.CallToolRequest, input ScoresInput) (*mcpsdk.CallToolResult, ScoresOutput, error) {
	out := ScoresOutput{}
	for _, side := range []struct {
		name  string
		raw   map[string]int
		total *int
	}{
		{"BLUE", input.Blue, &out.BlueTotal},
		{"RED", input.Red, &out.RedTotal},
	} {
		delta, errs := toDelta(side.raw)
		for _, e := range errs {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", side.name, e))
		}
		if err := scoring.ValidateDelta(delta); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", side.name, err))
		}
		for _, v := range delta {
			*side.total += v
		}
	}
	out.Valid = len(out.Errors) == 0

	s.recordValidation("scores", out.Valid, strings.Join(out.Errors, "; "))
	if !out.Valid {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

// toDelta parses dimension names, collecting unknown ones instead of
// stopping at the first.
func toDelta(raw map[string]int) (scoring.Delta, []string) {
	delta := make(scoring.Delta, len(raw))
	var errs []string
	for k, v := range raw {
		d, err := scoring.ParseDimension(k)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		delta[d] = v
	}
	return delta, errs
}

func (s *Server) handleValidateRAI(ctx context.Context, req *mcpsdk.CallToolRequest, input RAIInput) (*mcpsdk.CallToolResult, RAIOutput, error) {
	var warnings []rai.Warning
	out := RAIOutput{}

	if input.DemoID != "" {
		demo, err := s.registry.Get(registry.DemoID(input.DemoID))
		if err != nil {
			return nil, RAIOutput{}, err
		}
		warnings = rai.ValidateDemo(demo)
		out.Demos = 1
	} else {
		warnings = rai.ValidateAll(s.registry)
		out.Demos = s.registry.Len()
	}
	for _, w := range warnings {
		out.Warnings = append(out.Warnings, string(w))
	}
	for _, w := range rai.CheckFraming(input.Text) {
		out.Framing = append(out.Framing, string(w))
	}
	out.Passed = len(out.Warnings) == 0 && len(out.Framing) == 0

	subject := "registry"
	if input.DemoID != "" {
		subject = input.DemoID
	}
	s.recordValidation("rai:"+subject, out.Passed, strings.Join(slices.Concat(out.Warnings, out.Framing), "; "))
	return nil, out, nil
}
