package registry

import (
	"fmt"
	"time"

	"github.com/ppiankov/oodakit/internal/model"
)

// ScenarioConfig is a variant condition that can be applied to any demo.
type ScenarioConfig struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        model.ScenarioType `json:"-"`
	Parameters  map[string]string  `json:"parameters"`
}

var scenarios = []ScenarioConfig{
	{Name: "Baseline", Description: "Nominal conditions and standard tempo.", Type: model.Baseline},
	{Name: "High Tempo", Description: "Accelerated operations and compressed timelines.", Type: model.HighTempo},
	{Name: "Degraded Comms", Description: "Intermittent or limited communications.", Type: model.DegradedComms},
	{Name: "Adversary Surprise", Description: "Unexpected adversary actions and ambiguity.", Type: model.AdversarySurprise},
}

// Scenarios returns the four scenario variants in display order.
func Scenarios() []ScenarioConfig {
	out := make([]ScenarioConfig, len(scenarios))
	for i, s := range scenarios {
		s.Parameters = map[string]string{"scenario_type": s.Type.String()}
		out[i] = s
	}
	return out
}

// ScenarioNames returns the display names used by scenario selectors.
func ScenarioNames() []string {
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	return names
}

// Scenario looks a variant up by display name.
func Scenario(name string) (ScenarioConfig, error) {
	for _, s := range Scenarios() {
		if s.Name == name {
			return s, nil
		}
	}
	return ScenarioConfig{}, fmt.Errorf("scenario %q not found", name)
}

// Runtime defaults shared across demos.
const (
	GridSize                = 10
	NumWargameTurns         = 3
	NumCounterfactualWorlds = 4
	NumGrayzoneTurns        = 5
	GameLogFilename         = "demo2_game_log.json"

	DefaultModel      = "gpt-4o"
	DefaultTimeout    = 120 * time.Second
	DefaultRetryLimit = 2
)

// PerturbationAxes are the dimensions varied across counterfactual worlds.
var PerturbationAxes = []string{
	"weather",
	"unit_readiness",
	"adversary_intent",
	"roe_constraint",
}
