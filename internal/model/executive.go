// internal/model/executive.go
package model

type Executive struct {
	ID                  int    `db:"id" json:"id"`
	Name                string `db:"name" json:"name"`
	Email               string `db:"email" json:"email"`
	Available           bool   `db:"available" json:"available"`
	AssignedOrders      int    `db:"assigned_orders" json:"assigned_orders"`
	CompletedDeliveries int    `db:"completed_deliveries" json:"completed_deliveries"`
}
