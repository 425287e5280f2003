// Package domain defines core business entities and value objects for Djinn.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

// PolicyDecision is the outcome of assessing a command against a safety policy.
type PolicyDecision string

const (
	// DecisionAllow executes without extra friction.
	DecisionAllow PolicyDecision = "allow"
	// DecisionConfirm requires user consent before execution.
	DecisionConfirm PolicyDecision = "confirm"
	// DecisionDeny blocks execution unconditionally.
	DecisionDeny PolicyDecision = "deny"
)

// Assessment is the result of one policy evaluation. Produced fresh per
// command; carries enough context for the prompter to explain itself.
type Assessment struct {
	Decision PolicyDecision
	// Policy is the name of the ruleset that produced the decision.
	Policy string
	// Pattern is the matched deny/confirm pattern. Empty when the policy
	// default applied.
	Pattern string
	Reason  string
	// RequireExplicit upgrades the confirmation from y/n to a typed "YES".
	RequireExplicit bool
}
