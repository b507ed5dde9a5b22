// internal/model/classification.go
package model

// Classification outcomes.
const (
	OutcomeReady     = "ready"
	OutcomeException = "exception"
)

// ClassificationResult is derived per order from the enabled rule set. It is
// recomputed from scratch whenever the rule set changes, never patched.
type ClassificationResult struct {
	OrderID int      `json:"order_id"`
	Outcome string   `json:"outcome"`
	Flags   []string `json:"flags"`
	Reason  string   `json:"reason,omitempty"`
}

// ExceptionDecision records the operator's include/exclude choice for one
// exception order.
type ExceptionDecision struct {
	OrderID  int  `json:"order_id"`
	Selected bool `json:"selected"`
}
