// internal/model/rule.go
package model

import "time"

// Rule kinds select the predicate evaluated against a candidate order.
const (
	RuleValueAbove = "value_above"
	RuleTagPresent = "tag_present"
	RuleDueWithin  = "due_within"
)

// ExclusionRule is a named, toggleable predicate that flags orders out of
// automatic assignment. One of Threshold, Tag or Window applies, depending
// on Kind.
type ExclusionRule struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Enabled     bool          `json:"enabled"`
	Kind        string        `json:"kind"`
	Threshold   float64       `json:"threshold,omitempty"`
	Tag         string        `json:"tag,omitempty"`
	Window      time.Duration `json:"window,omitempty"`
}
