package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ppiankov/oodakit/internal/audit"
)

var (
	// ErrUnknownCOA is returned by DecisionPanel.Set for an ID not on the panel.
	ErrUnknownCOA = errors.New("unknown course of action")
	// ErrInvalidDecision is returned for a verdict other than Accept or Reject.
	ErrInvalidDecision = errors.New("decision must be accept or reject")
	// ErrAlreadyConfirmed is returned once a panel's decisions are locked in.
	ErrAlreadyConfirmed = errors.New("decisions already confirmed")
	// ErrUnknownScenario is returned by ScenarioSelector.Select for a name
	// outside its options.
	ErrUnknownScenario = errors.New("unknown scenario option")
)

// Decision is the operator's verdict on a course of action.
type Decision string

const (
	Accept Decision = "accept"
	Reject Decision = "reject"
)

// COA is a course of action offered for a decision.
type COA struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DecisionPanel collects an accept or reject verdict per COA for one
// counterfactual world. Every COA starts accepted.
type DecisionPanel struct {
	mu        sync.Mutex
	world     string
	coas      []COA
	decisions map[string]Decision
	journal   *audit.Log
	gameID    string
	confirmed bool
}

// PanelOption configures a DecisionPanel.
type PanelOption func(*DecisionPanel)

// WithDecisionJournal records confirmed decisions under gameID.
func WithDecisionJournal(j *audit.Log, gameID string) PanelOption {
	return func(p *DecisionPanel) {
		p.journal = j
		p.gameID = gameID
	}
}

// NewDecisionPanel builds a panel for world's COAs.
func NewDecisionPanel(world string, coas []COA, opts ...PanelOption) *DecisionPanel {
	p := &DecisionPanel{
		world:     world,
		coas:      slices.Clone(coas),
		decisions: make(map[string]Decision, len(coas)),
	}
	for _, c := range coas {
		p.decisions[c.ID] = Accept
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Set records a verdict, accepting any letter case.
func (p *DecisionPanel) Set(coaID string, d Decision) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.confirmed {
		return ErrAlreadyConfirmed
	}
	if _, ok := p.decisions[coaID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCOA, coaID)
	}
	d = Decision(strings.ToLower(string(d)))
	if d != Accept && d != Reject {
		return fmt.Errorf("%w: %q", ErrInvalidDecision, d)
	}
	p.decisions[coaID] = d
	return nil
}

// Decisions returns a copy of the current verdicts.
func (p *DecisionPanel) Decisions() map[string]Decision {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]Decision, len(p.decisions))
	for k, v := range p.decisions {
		out[k] = v
	}
	return out
}

// ConfirmLabel is the text of the confirm control.
func (p *DecisionPanel) ConfirmLabel() string {
	return fmt.Sprintf("Confirm %s Decisions", p.world)
}

// Confirmed reports whether Confirm has succeeded.
func (p *DecisionPanel) Confirmed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.confirmed
}

// Confirm locks the verdicts and journals one decision entry per COA in
// panel order.
func (p *DecisionPanel) Confirm() (map[string]Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.confirmed {
		return nil, ErrAlreadyConfirmed
	}
	if p.journal != nil {
		for _, c := range p.coas {
			err := p.journal.Record(audit.Entry{
				GameID:   p.gameID,
				Kind:     audit.KindDecision,
				Subject:  c.ID,
				Decision: string(p.decisions[c.ID]),
				Detail:   fmt.Sprintf("%s (%s)", c.Name, p.world),
			})
			if err != nil {
				return nil, fmt.Errorf("journal decision %s: %w", c.ID, err)
			}
		}
	}
	p.confirmed = true

	out := make(map[string]Decision, len(p.decisions))
	for k, v := range p.decisions {
		out[k] = v
	}
	return out, nil
}

// Render draws the panel as HTML with the current verdicts.
func (p *DecisionPanel) Render() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "<div style='background:%s; color:%s; padding:12px; border-radius:8px; font-family:%s;'>",
		BGCard, FGPrimary, font)
	for _, c := range p.coas {
		d := p.decisions[c.ID]
		col := ColorGreen
		if d == Reject {
			col = ColorRedSide
		}
		fmt.Fprintf(&b, "<div style='margin:4px 0;'><b style='display:inline-block; width:80px;'>%s:</b> "+
			"<span style='color:%s; font-weight:bold;'>%s</span>  <i>%s</i></div>",
			esc(c.ID), col, strings.ToUpper(string(d[:1]))+string(d[1:]), esc(c.Name))
	}
	state := ""
	if p.confirmed {
		state = " (confirmed)"
	}
	fmt.Fprintf(&b, "<div style='margin-top:8px; color:%s;'><b>%s</b>%s</div></div>",
		ColorGreen, esc(p.ConfirmLabel()), state)
	return b.String()
}

// ScenarioSelector is a scenario picker with start and reset actions.
type ScenarioSelector struct {
	mu         sync.Mutex
	options    []string
	selected   string
	status     string
	onStart    func(string) error
	onReset    func() error
	StartLabel string
	ResetLabel string
}

// DefaultStatus is the selector status before anything runs.
const DefaultStatus = "Ready"

// NewScenarioSelector selects the first option. Either callback may be nil.
func NewScenarioSelector(options []string, onStart func(string) error, onReset func() error) *ScenarioSelector {
	s := &ScenarioSelector{
		options:    slices.Clone(options),
		status:     DefaultStatus,
		onStart:    onStart,
		onReset:    onReset,
		StartLabel: "Start",
		ResetLabel: "Reset",
	}
	if len(options) > 0 {
		s.selected = options[0]
	}
	return s
}

// Select changes the chosen scenario.
func (s *ScenarioSelector) Select(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.options, name) {
		return fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	s.selected = name
	return nil
}

// Selected returns the chosen scenario.
func (s *ScenarioSelector) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SetStatus replaces the status line.
func (s *ScenarioSelector) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Status returns the status line.
func (s *ScenarioSelector) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start runs the start callback with the selected scenario.
func (s *ScenarioSelector) Start() error {
	s.mu.Lock()
	selected, fn := s.selected, s.onStart
	s.mu.Unlock()

	if selected == "" {
		return fmt.Errorf("%w: none selected", ErrUnknownScenario)
	}
	if fn == nil {
		return nil
	}
	return fn(selected)
}

// Reset runs the reset callback and restores the default status.
func (s *ScenarioSelector) Reset() error {
	s.mu.Lock()
	fn := s.onReset
	s.mu.Unlock()

	if fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	s.SetStatus(DefaultStatus)
	return nil
}

// Render draws the selector as HTML.
func (s *ScenarioSelector) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var opts strings.Builder
	for _, o := range s.options {
		sel := ""
		if o == s.selected {
			sel = " selected"
		}
		fmt.Fprintf(&opts, "<option%s>%s</option>", sel, esc(o))
	}
	return fmt.Sprintf("<div style='font-family:%s;'><label>Scenario: <select style='width:360px;'>%s</select></label> "+
		"<button style='background:%s;'>%s</button> <button style='background:#bf8700;'>%s</button>"+
		"<div style='margin:4px 0 0 0;'><b>Status:</b> %s</div></div>",
		font, opts.String(), ColorGreen, esc(s.StartLabel), esc(s.ResetLabel), esc(s.status))
}
