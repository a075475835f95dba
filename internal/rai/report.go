package rai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/oodakit/internal/registry"
)

// DemoResult is the compliance outcome for one demo.
type DemoResult struct {
	ID       registry.DemoID `json:"id"`
	Title    string          `json:"title"`
	Warnings []Warning       `json:"warnings"`
}

// Passed reports whether the demo produced no warnings.
func (d DemoResult) Passed() bool { return len(d.Warnings) == 0 }

// Report aggregates compliance results across a registry.
type Report struct {
	Demos  []DemoResult `json:"demos"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
}

// Warnings flattens the per-demo warnings in registry order.
func (r *Report) Warnings() []Warning {
	var out []Warning
	for _, d := range r.Demos {
		out = append(out, d.Warnings...)
	}
	return out
}

// Check validates every demo in reg and builds a report.
func Check(reg *registry.Registry) *Report {
	r := &Report{Demos: []DemoResult{}}
	for _, demo := range reg.All() {
		w := ValidateDemo(demo)
		if w == nil {
			w = []Warning{}
		}
		r.Demos = append(r.Demos, DemoResult{ID: demo.ID, Title: demo.Title, Warnings: w})
		r.Total++
		if len(w) == 0 {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	return r
}

// FormatText renders a report as human-readable text.
func FormatText(r *Report) string {
	var b strings.Builder

	header := fmt.Sprintf("RAI compliance: %d demos", r.Total)
	fmt.Fprintln(&b, header)
	fmt.Fprintln(&b, strings.Repeat("═", len(header)))

	for _, d := range r.Demos {
		status := "PASS"
		if !d.Passed() {
			status = "WARN"
		}
		fmt.Fprintf(&b, "  %-30s %s\n", d.ID, status)
		for _, w := range d.Warnings {
			fmt.Fprintf(&b, "    - %s\n", w)
		}
	}

	fmt.Fprintln(&b, strings.Repeat("─", len(header)))

	status := "PASS"
	if r.Failed > 0 {
		status = "WARN"
	}
	fmt.Fprintf(&b, "Result: %s (%d/%d)\n", status, r.Passed, r.Total)

	return b.String()
}

// FormatJSON renders a report as JSON.
func FormatJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal rai report: %w", err)
	}
	return string(data), nil
}
