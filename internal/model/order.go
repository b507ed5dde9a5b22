// internal/model/order.go
package model

import "time"

// CandidateOrder is an order eligible for inclusion in a campaign, as
// supplied by the order source. Immutable once loaded.
type CandidateOrder struct {
	ID           int       `db:"id" json:"id"`
	OrderNumber  string    `db:"order_number" json:"order_number"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Value        float64   `db:"value" json:"value"`
	DueDate      time.Time `db:"due_date" json:"due_date"`
	Tags         []string  `db:"tags" json:"tags"`
}

// HasTag reports whether the order carries the given tag.
func (o CandidateOrder) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
