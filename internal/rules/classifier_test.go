package rules_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	appErrors "github.com/grupodelta/supplychain-backend/internal/errors"
	"github.com/grupodelta/supplychain-backend/internal/model"
	"github.com/grupodelta/supplychain-backend/internal/rules"
)

var now = time.Date(2024, 6, 19, 12, 0, 0, 0, time.UTC)

func highValueRule(enabled bool) model.ExclusionRule {
	return model.ExclusionRule{
		ID:          "high_value",
		Name:        "High Value",
		Description: "Order value above authorization threshold",
		Enabled:     enabled,
		Kind:        model.RuleValueAbove,
		Threshold:   50000,
	}
}

func vipRule(enabled bool) model.ExclusionRule {
	return model.ExclusionRule{
		ID:          "vip_customer",
		Name:        "VIP Customer",
		Description: "VIP customer requires executive confirmation",
		Enabled:     enabled,
		Kind:        model.RuleTagPresent,
		Tag:         "VIP",
	}
}

func TestClassifyNoEnabledRules(t *testing.T) {
	orders := []model.CandidateOrder{
		{ID: 1, Value: 75000, Tags: []string{"VIP"}},
		{ID: 2, Value: 30000},
	}
	ruleSet := []model.ExclusionRule{highValueRule(false), vipRule(false)}

	results := rules.Classify(orders, ruleSet, now)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Outcome != model.OutcomeReady {
			t.Errorf("order %d: expected ready, got %s", res.OrderID, res.Outcome)
		}
		if len(res.Flags) != 0 {
			t.Errorf("order %d: expected no flags, got %v", res.OrderID, res.Flags)
		}
	}
}

func TestClassifyHighValueScenario(t *testing.T) {
	orders := []model.CandidateOrder{
		{ID: 1, Value: 75000},
		{ID: 2, Value: 30000},
	}
	ruleSet := []model.ExclusionRule{highValueRule(true)}

	results := rules.Classify(orders, ruleSet, now)

	if results[0].Outcome != model.OutcomeException {
		t.Errorf("order 1: expected exception, got %s", results[0].Outcome)
	}
	if !reflect.DeepEqual(results[0].Flags, []string{"High Value"}) {
		t.Errorf("order 1: expected [High Value], got %v", results[0].Flags)
	}
	if results[1].Outcome != model.OutcomeReady {
		t.Errorf("order 2: expected ready, got %s", results[1].Outcome)
	}
	if len(results[1].Flags) != 0 {
		t.Errorf("order 2: expected no flags, got %v", results[1].Flags)
	}
}

func TestClassifyMultipleMatchesOneResult(t *testing.T) {
	orders := []model.CandidateOrder{
		{ID: 1, Value: 120000, Tags: []string{"VIP"}},
	}
	ruleSet := []model.ExclusionRule{vipRule(true), highValueRule(true)}

	results := rules.Classify(orders, ruleSet, now)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	res := results[0]
	if res.Outcome != model.OutcomeException {
		t.Fatalf("expected exception, got %s", res.Outcome)
	}
	if !reflect.DeepEqual(res.Flags, []string{"VIP Customer", "High Value"}) {
		t.Errorf("expected both flags in registry order, got %v", res.Flags)
	}
	// Reason comes from the first matching rule in registry order
	if res.Reason != "VIP customer requires executive confirmation" {
		t.Errorf("expected first matching rule's description, got %q", res.Reason)
	}
}

func TestClassifyDueWithinWindow(t *testing.T) {
	rule := model.ExclusionRule{
		ID:      "critical_date",
		Name:    "Critical Date",
		Enabled: true,
		Kind:    model.RuleDueWithin,
		Window:  48 * time.Hour,
	}
	orders := []model.CandidateOrder{
		{ID: 1, DueDate: now.Add(24 * time.Hour)},  // inside window
		{ID: 2, DueDate: now.Add(72 * time.Hour)},  // outside
		{ID: 3, DueDate: now.Add(-24 * time.Hour)}, // already overdue
	}

	results := rules.Classify(orders, []model.ExclusionRule{rule}, now)

	if results[0].Outcome != model.OutcomeException {
		t.Errorf("order due in 24h should be flagged")
	}
	if results[1].Outcome != model.OutcomeReady {
		t.Errorf("order due in 72h should be ready")
	}
	if results[2].Outcome != model.OutcomeException {
		t.Errorf("overdue order should be flagged")
	}
}

func TestClassifyEmptyOrders(t *testing.T) {
	results := rules.Classify(nil, rules.DefaultRules(), now)
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(results))
	}
}

func TestClassifyToggleEquivalence(t *testing.T) {
	orders := []model.CandidateOrder{
		{ID: 1, Value: 75000, Tags: []string{"VIP"}},
		{ID: 2, Value: 30000, Tags: []string{"VIP"}},
		{ID: 3, Value: 60000},
	}

	// Toggle through the registry, then classify
	registry := rules.NewRegistry([]model.ExclusionRule{vipRule(true), highValueRule(true)})
	if _, err := registry.Toggle("vip_customer"); err != nil {
		t.Fatal(err)
	}
	viaRegistry := rules.Classify(orders, registry.List(), now)

	// Classify from scratch with the flipped rule set
	fromScratch := rules.Classify(orders, []model.ExclusionRule{vipRule(false), highValueRule(true)}, now)

	if !reflect.DeepEqual(viaRegistry, fromScratch) {
		t.Errorf("toggle-then-classify diverged from classify-from-scratch:\n%v\nvs\n%v", viaRegistry, fromScratch)
	}
}

func TestRegistryToggleUnknownRule(t *testing.T) {
	registry := rules.NewRegistry(rules.DefaultRules())

	_, err := registry.Toggle("no_such_rule")
	if err == nil {
		t.Fatal("expected error for unknown rule id")
	}
	var notFound *appErrors.ErrRuleNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrRuleNotFound, got %T", err)
	}

	// Registry state must be unchanged
	for _, rule := range registry.List() {
		if !rule.Enabled {
			t.Errorf("rule %s should still be enabled after failed toggle", rule.ID)
		}
	}
}

func TestRegistryIsolation(t *testing.T) {
	seed := rules.DefaultRules()
	first := rules.NewRegistry(seed)
	second := rules.NewRegistry(seed)

	if _, err := first.Toggle("high_value"); err != nil {
		t.Fatal(err)
	}

	for _, rule := range second.List() {
		if rule.ID == "high_value" && !rule.Enabled {
			t.Error("toggle leaked into a sibling registry")
		}
	}
	for _, rule := range seed {
		if !rule.Enabled {
			t.Error("toggle leaked into the seed slice")
		}
	}
}
