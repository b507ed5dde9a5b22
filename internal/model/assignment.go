// internal/model/assignment.go
package model

import "time"

// Assignment statuses.
const (
	AssignmentPending  = "pending"
	AssignmentNotified = "notified"
	AssignmentManaged  = "managed"
	AssignmentFailed   = "failed"
)

// Management outcomes an executive can record on an assignment.
const (
	OutcomeDeliveryScheduled = "delivery_scheduled"
	OutcomeContacted         = "contacted"
	OutcomeNoAnswer          = "no_answer"
	OutcomeRescheduled       = "rescheduled"
)

// Assignment links one campaign order to the executive who manages it.
type Assignment struct {
	ID          int       `db:"id" json:"id"`
	CampaignID  int       `db:"campaign_id" json:"campaign_id"`
	OrderID     int       `db:"order_id" json:"order_id"`
	ExecutiveID int       `db:"executive_id" json:"executive_id"`
	Status      string    `db:"status" json:"status"` // pending, notified, managed, failed
	Outcome     string    `db:"outcome,omitempty" json:"outcome,omitempty"`
	LastError   string    `db:"last_error,omitempty" json:"last_error,omitempty"`
	RetryCount  int       `db:"retry_count" json:"retry_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ValidOutcome reports whether s is one of the recordable outcomes.
func ValidOutcome(s string) bool {
	switch s {
	case OutcomeDeliveryScheduled, OutcomeContacted, OutcomeNoAnswer, OutcomeRescheduled:
		return true
	}
	return false
}
