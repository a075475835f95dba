// Package rai holds the Responsible AI policy text shared by every demo and
// the rule-based checks that keep demo metadata consistent with it.
package rai

// SyntheticDataMarker is the value of the "synthetic" field every
// world-state document must carry.
const SyntheticDataMarker = true

// SyntheticDataDisclaimer is the required "disclaimer" field value.
const SyntheticDataDisclaimer = "All data is artificially generated for research and educational " +
	"purposes only."

// ScopeStatement must appear in every notebook's scope cell.
const ScopeStatement = "This research explores human-AI collaboration and explainable " +
	"decision-support in fully synthetic, abstract environments. All " +
	"scenarios, agents, and data are artificially generated. No real-world " +
	"operational data, contingency plans, systems, or intelligence are used " +
	"or represented. The prototype is intended exclusively for research, " +
	"educational, and experimental purposes and does not constitute an " +
	"operational model, validated planning tool, or source of decision " +
	"authority."

// HITLSystemPrompt is appended to every agent's system message.
const HITLSystemPrompt = "All decisions remain with the human operator. You provide analysis " +
	"and options, not directives."

// DoctrinalDisclaimer is required wherever doctrinal references appear.
const DoctrinalDisclaimer = "Inspired by publicly available doctrinal concepts. This system does " +
	"not represent authoritative doctrine, operational procedures, or " +
	"rules of engagement."

// CognitiveBiases are the named biases the bias auditor reports.
var CognitiveBiases = []string{
	"anchoring",
	"recency bias",
	"escalation commitment",
	"mirror-imaging",
	"availability heuristic",
}

// RecommendationVerbs are acceptable framing verbs for agent output.
var RecommendationVerbs = []string{
	"recommends",
	"assesses",
	"suggests",
	"evaluates",
	"proposes",
}

// ForbiddenActionVerbs must not frame agent output.
var ForbiddenActionVerbs = []string{
	"directs",
	"orders",
	"commands",
	"authorizes",
	"executes",
}
