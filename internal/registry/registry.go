// Package registry holds the static metadata for every demo: roles, OODA
// phases, runtime defaults and the flags the RAI validator checks.
package registry

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/oodakit/internal/model"
)

var (
	// ErrNotFound is returned when a demo identifier is not registered.
	ErrNotFound = errors.New("demo not registered")
	// ErrDuplicate is returned when two configs share an identifier.
	ErrDuplicate = errors.New("duplicate demo id")
)

// DemoID identifies a demo notebook.
type DemoID string

const (
	LivingBrief        DemoID = "demo1_living_brief"
	GrayzoneRBW        DemoID = "demo2_grayzone_rbw"
	HierarchicalC2     DemoID = "demo3_hierarchical_c2"
	CounterfactualCOA  DemoID = "demo4_counterfactual_coa"
	AARDoctrinalClinic DemoID = "demo5_aar_doctrinal_clinic"
)

// Defaults applied to any field a registry entry leaves unset.
const (
	DefaultTemperature = 0.3
	DefaultMaxMessages = 5
)

// DemoConfig is the immutable description of one demo.
type DemoConfig struct {
	ID           DemoID            `yaml:"id" json:"id"`
	Title        string            `yaml:"title" json:"title"`
	Subtitle     string            `yaml:"subtitle" json:"subtitle"`
	OODAPhases   []model.OODAPhase `yaml:"ooda_phases" json:"ooda_phases"`
	AgentRoles   []string          `yaml:"agent_roles" json:"agent_roles"`
	AgentRuntime string            `yaml:"agent_runtime" json:"agent_runtime"`
	Temperature  float64           `yaml:"temperature" json:"temperature"`
	MaxMessages  int               `yaml:"max_messages" json:"max_messages"`
	// HasHITL is true when the demo includes an interactive human-in-the-loop gate.
	HasHITL bool `yaml:"has_hitl" json:"has_hitl"`
	// RequiresExplainability is true when the demo must field an explainability agent.
	RequiresExplainability bool `yaml:"requires_explainability" json:"requires_explainability"`
}

// UnmarshalYAML fills defaults before decoding so omitted keys keep them.
func (d *DemoConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain DemoConfig
	p := plain{
		Temperature:            DefaultTemperature,
		MaxMessages:            DefaultMaxMessages,
		RequiresExplainability: true,
	}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = DemoConfig(p)
	return nil
}

// Registry is an ordered, read-only set of demo configs.
type Registry struct {
	order []DemoID
	demos map[DemoID]DemoConfig
}

// New builds a registry from configs in the given order.
func New(configs ...DemoConfig) (*Registry, error) {
	r := &Registry{
		order: make([]DemoID, 0, len(configs)),
		demos: make(map[DemoID]DemoConfig, len(configs)),
	}
	for _, c := range configs {
		if _, exists := r.demos[c.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, c.ID)
		}
		r.order = append(r.order, c.ID)
		r.demos[c.ID] = clone(c)
	}
	return r, nil
}

// Get returns the config for id.
func (r *Registry) Get(id DemoID) (DemoConfig, error) {
	c, ok := r.demos[id]
	if !ok {
		return DemoConfig{}, fmt.Errorf("%w: %q", ErrNotFound, string(id))
	}
	return clone(c), nil
}

// IDs returns identifiers in registration order.
func (r *Registry) IDs() []DemoID {
	out := make([]DemoID, len(r.order))
	copy(out, r.order)
	return out
}

// All returns every config in registration order.
func (r *Registry) All() []DemoConfig {
	out := make([]DemoConfig, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.demos[id]))
	}
	return out
}

// Len returns the number of registered demos.
func (r *Registry) Len() int {
	return len(r.order)
}

func clone(c DemoConfig) DemoConfig {
	c.OODAPhases = append([]model.OODAPhase(nil), c.OODAPhases...)
	c.AgentRoles = append([]string(nil), c.AgentRoles...)
	return c
}
