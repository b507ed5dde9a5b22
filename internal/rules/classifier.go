// internal/rules/classifier.go
package rules

import (
	"time"

	"github.com/grupodelta/supplychain-backend/internal/model"
)

// Classify evaluates every order against the enabled rules and returns one
// result per order, in input order.
//
// An order matching at least one enabled rule becomes an exception carrying
// the labels of every matched rule (evaluation order, deduplicated by rule
// id) and the description of the first matching rule as its reason. Orders
// matching nothing are ready for automatic assignment.
//
// Classify is pure: same orders, rules and reference time always produce the
// same results. After a rule toggle the caller must re-run it over the full
// order list; results are never patched incrementally.
func Classify(orders []model.CandidateOrder, ruleSet []model.ExclusionRule, now time.Time) []model.ClassificationResult {
	results := make([]model.ClassificationResult, 0, len(orders))
	for _, order := range orders {
		res := model.ClassificationResult{
			OrderID: order.ID,
			Outcome: model.OutcomeReady,
			Flags:   []string{},
		}
		matched := map[string]bool{}
		for _, rule := range ruleSet {
			if !rule.Enabled || matched[rule.ID] {
				continue
			}
			if !ruleMatches(rule, order, now) {
				continue
			}
			matched[rule.ID] = true
			if res.Outcome == model.OutcomeReady {
				res.Outcome = model.OutcomeException
				res.Reason = rule.Description
			}
			res.Flags = append(res.Flags, rule.Name)
		}
		results = append(results, res)
	}
	return results
}

func ruleMatches(rule model.ExclusionRule, order model.CandidateOrder, now time.Time) bool {
	switch rule.Kind {
	case model.RuleValueAbove:
		return order.Value > rule.Threshold
	case model.RuleTagPresent:
		return order.HasTag(rule.Tag)
	case model.RuleDueWithin:
		// Overdue orders also count as due within the window.
		return order.DueDate.Sub(now) <= rule.Window
	}
	return false
}
