package model

import (
	"fmt"
	"sort"
)

// labelSet maps enum values to their wire labels.
type labelSet[T ~int] map[T]string

func (ls labelSet[T]) label(v T) string {
	if s, ok := ls[v]; ok {
		return s
	}
	return "unknown"
}

func (ls labelSet[T]) parse(kind, s string) (T, error) {
	for v, label := range ls {
		if label == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

func (ls labelSet[T]) ordered() []T {
	out := make([]T, 0, len(ls))
	for v := range ls {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OODAPhase is one phase of the Observe-Orient-Decide-Act loop.
type OODAPhase int

const (
	Observe OODAPhase = iota
	Orient
	Decide
	Act
)

var phaseLabels = labelSet[OODAPhase]{
	Observe: "observe",
	Orient:  "orient",
	Decide:  "decide",
	Act:     "act",
}

// OODAPhases returns the four phases in loop order.
func OODAPhases() []OODAPhase { return phaseLabels.ordered() }

func (p OODAPhase) String() string { return phaseLabels.label(p) }

// ParseOODAPhase maps "observe", "orient", "decide" or "act" to a phase.
func ParseOODAPhase(s string) (OODAPhase, error) { return phaseLabels.parse("OODA phase", s) }

func (p OODAPhase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *OODAPhase) UnmarshalText(b []byte) error {
	v, err := ParseOODAPhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ScenarioType is a variant condition applied to any demo.
type ScenarioType int

const (
	Baseline ScenarioType = iota
	HighTempo
	DegradedComms
	AdversarySurprise
)

var scenarioLabels = labelSet[ScenarioType]{
	Baseline:          "baseline",
	HighTempo:         "high_tempo",
	DegradedComms:     "degraded_comms",
	AdversarySurprise: "adversary_surprise",
}

// ScenarioTypes returns all scenario variants in declaration order.
func ScenarioTypes() []ScenarioType { return scenarioLabels.ordered() }

func (s ScenarioType) String() string { return scenarioLabels.label(s) }

// ParseScenarioType maps a wire label such as "high_tempo" to a variant.
func ParseScenarioType(s string) (ScenarioType, error) {
	return scenarioLabels.parse("scenario type", s)
}

// Side is a participant in a wargame.
type Side int

const (
	Blue Side = iota
	Red
	// Gray marks ambiguous actors such as maritime militia.
	Gray
)

var sideLabels = labelSet[Side]{
	Blue: "BLUE",
	Red:  "RED",
	Gray: "GRAY",
}

func (s Side) String() string { return sideLabels.label(s) }

// ParseSide maps "BLUE", "RED" or "GRAY" to a side.
func ParseSide(s string) (Side, error) { return sideLabels.parse("side", s) }

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnitType is the short platform code shown on the battlespace grid.
type UnitType string

const (
	UnitDDG        UnitType = "DDG"
	UnitFFG        UnitType = "FFG"
	UnitPatrol     UnitType = "PC"
	UnitMPA        UnitType = "MPA"
	UnitUAV        UnitType = "UAV"
	UnitSub        UnitType = "SSN"
	UnitCoastGuard UnitType = "CCG"
	UnitMilitia    UnitType = "MILITIA"
)

// Terrain is a grid cell type. The value is the cell's map symbol.
type Terrain string

const (
	OpenWater Terrain = "~"
	Strait    Terrain = "="
	Shallows  Terrain = "."
	Island    Terrain = "#"
	Port      Terrain = "P"
)

// AgentRole is a canonical role identifier across all demos.
// Display names live in the demo registry; these keys never change.
type AgentRole string

const (
	RoleCommander          AgentRole = "commander"
	RoleManager            AgentRole = "manager"
	RoleOperator           AgentRole = "operator"
	RoleAnalyst            AgentRole = "analyst"
	RoleBriefer            AgentRole = "briefer"
	RoleOrchestrator       AgentRole = "orchestrator"
	RolePlanner            AgentRole = "planner"
	RoleReviewer           AgentRole = "reviewer"
	RoleAuditor            AgentRole = "auditor"
	RoleRedTeam            AgentRole = "red_team"
	RoleWhiteCell          AgentRole = "white_cell"
	RoleLegalROE           AgentRole = "legal_roe"
	RoleStratComm          AgentRole = "stratcomm"
	RoleModelSelector      AgentRole = "model_selector"
	RoleFeedbackAggregator AgentRole = "feedback_aggregator"
	RoleNarrator           AgentRole = "narrator"
	RoleDoctrinalCritic    AgentRole = "doctrinal_critic"
	RoleCounterfactual     AgentRole = "counterfactual"
	RoleLessonsCompiler    AgentRole = "lessons_compiler"
	RoleExplainer          AgentRole = "explainer"
	RoleFacilitatorHITL    AgentRole = "facilitator_hitl"
	RoleCommanderHITL      AgentRole = "commander_hitl"
)
