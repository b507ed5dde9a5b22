// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"strings"
)

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrRuleNotFound: a toggle referenced a rule id the registry does not hold.
// Indicates caller/UI desynchronization; registry state is left unchanged.
type ErrRuleNotFound struct {
	RuleID string
}

func (e *ErrRuleNotFound) Error() string {
	return fmt.Sprintf("exclusion rule %q not found", e.RuleID)
}

func NewRuleNotFound(id string) error {
	return &ErrRuleNotFound{RuleID: id}
}

// ErrOrderNotFound: a decision toggle referenced an order id absent from the
// exception set.
type ErrOrderNotFound struct {
	OrderID int
}

func (e *ErrOrderNotFound) Error() string {
	return fmt.Sprintf("order with ID %d not found in review set", e.OrderID)
}

func NewOrderNotFound(id int) error {
	return &ErrOrderNotFound{OrderID: id}
}

// ErrAssignmentNotFound is returned when an outcome is recorded against an
// unknown assignment.
type ErrAssignmentNotFound struct {
	AssignmentID int
}

func (e *ErrAssignmentNotFound) Error() string {
	return fmt.Sprintf("assignment with ID %d not found", e.AssignmentID)
}

func NewAssignmentNotFound(id int) error {
	return &ErrAssignmentNotFound{AssignmentID: id}
}

// ErrSessionNotFound: the draft session id is unknown (expired or never
// created).
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("campaign draft session %q not found", e.SessionID)
}

func NewSessionNotFound(id string) error {
	return &ErrSessionNotFound{SessionID: id}
}

// ValidationError reports a missing or malformed field. Never fatal; the
// caller may correct the input and retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ErrInvalidState guards the campaign workflow state machine against
// out-of-order calls. Recoverable by returning to the correct state.
type ErrInvalidState struct {
	State  string
	Action string
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("cannot %s while session is in state %q", e.Action, e.State)
}

func NewInvalidState(state, action string) error {
	return &ErrInvalidState{State: state, Action: action}
}

// ErrIncompleteReview: confirm was called while some exception orders still
// lack an explicit decision record.
type ErrIncompleteReview struct {
	Missing int
}

func (e *ErrIncompleteReview) Error() string {
	return fmt.Sprintf("review incomplete: %d exception(s) without a decision", e.Missing)
}

func NewIncompleteReview(missing int) error {
	return &ErrIncompleteReview{Missing: missing}
}

// ErrUnavailableExecutive: confirm-time validation found assigned executives
// that are no longer available. Blocks activation until corrected.
type ErrUnavailableExecutive struct {
	ExecutiveIDs []int
}

func (e *ErrUnavailableExecutive) Error() string {
	ids := make([]string, len(e.ExecutiveIDs))
	for i, id := range e.ExecutiveIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("executives not available: %s", strings.Join(ids, ", "))
}

func NewUnavailableExecutive(ids []int) error {
	return &ErrUnavailableExecutive{ExecutiveIDs: ids}
}
