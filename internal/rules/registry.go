// internal/rules/registry.go
package rules

import (
	"time"

	appErrors "github.com/grupodelta/supplychain-backend/internal/errors"
	"github.com/grupodelta/supplychain-backend/internal/model"
)

// Registry holds the exclusion rules of a single campaign draft. Each draft
// gets its own copy; toggles never leak across campaigns.
type Registry struct {
	rules []model.ExclusionRule
}

// DefaultRules returns the stock rule set seeded into every new draft.
func DefaultRules() []model.ExclusionRule {
	return []model.ExclusionRule{
		{
			ID:          "vip_customer",
			Name:        "VIP Customer",
			Description: "VIP customer requires executive confirmation",
			Enabled:     true,
			Kind:        model.RuleTagPresent,
			Tag:         "VIP",
		},
		{
			ID:          "high_value",
			Name:        "High Value",
			Description: "Order value above authorization threshold",
			Enabled:     true,
			Kind:        model.RuleValueAbove,
			Threshold:   50000,
		},
		{
			ID:          "critical_date",
			Name:        "Critical Date",
			Description: "Delivery due in less than 48 hours",
			Enabled:     true,
			Kind:        model.RuleDueWithin,
			Window:      48 * time.Hour,
		},
	}
}

// NewRegistry seeds a registry from the given rules. The slice is copied so
// the caller's seed cannot be mutated through the registry.
func NewRegistry(seed []model.ExclusionRule) *Registry {
	rules := make([]model.ExclusionRule, len(seed))
	copy(rules, seed)
	return &Registry{rules: rules}
}

// List returns the rules in registry order.
func (r *Registry) List() []model.ExclusionRule {
	out := make([]model.ExclusionRule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Toggle flips the enabled state of one rule and returns the updated rule.
func (r *Registry) Toggle(ruleID string) (model.ExclusionRule, error) {
	for i := range r.rules {
		if r.rules[i].ID == ruleID {
			r.rules[i].Enabled = !r.rules[i].Enabled
			return r.rules[i], nil
		}
	}
	return model.ExclusionRule{}, appErrors.NewRuleNotFound(ruleID)
}
