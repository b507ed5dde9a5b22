// internal/model/campaign.go
package model

import "time"

// Campaign types: which order population the campaign targets.
const (
	CampaignBeforeDue = "before_due"
	CampaignOverdue   = "overdue"
)

// Persisted campaign statuses. Draft and reviewing exist only inside an
// in-memory workflow session; a campaign reaches the database as active.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

type Campaign struct {
	ID           int        `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Type         string     `db:"type" json:"type"`
	Status       string     `db:"status" json:"status"`
	Goal         int        `db:"goal" json:"goal"`
	Progress     int        `db:"progress" json:"progress"`
	ExecutiveIDs []int64    `db:"executive_ids" json:"executive_ids"`
	OrderCount   int        `db:"order_count" json:"order_count"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
