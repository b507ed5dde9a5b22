package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/grupodelta/supplychain-backend/internal/model"
)

// OrderRepositoryInterface is the order source consumed by the campaign
// workflow. It returns finite, already-deduplicated lists; callers never
// retry or paginate.
type OrderRepositoryInterface interface {
	ListCandidates(campaignType string, now time.Time) ([]model.CandidateOrder, error)
	Indicators(now time.Time) (dueSoon int, overdue int, err error)
}

// OrderRepository is the Postgres-backed implementation.
type OrderRepository struct {
	DB *sql.DB
}

// Date windows per campaign type: before_due looks one week ahead, overdue
// looks thirty days back.
const (
	beforeDueWindow = 7 * 24 * time.Hour
	overdueWindow   = 30 * 24 * time.Hour
)

// ListCandidates fetches the candidate orders for a campaign type relative
// to the given instant.
func (r *OrderRepository) ListCandidates(campaignType string, now time.Time) ([]model.CandidateOrder, error) {
	query := `
        SELECT id, order_number, customer_name, value, due_date, tags
        FROM candidate_orders
        WHERE due_date >= $1 AND due_date <= $2
        ORDER BY id
    `
	from, to := now, now.Add(beforeDueWindow)
	if campaignType == model.CampaignOverdue {
		from, to = now.Add(-overdueWindow), now
	}

	rows, err := r.DB.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.CandidateOrder{}
	for rows.Next() {
		var o model.CandidateOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Value, &o.DueDate, pq.Array(&o.Tags)); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetByID fetches one candidate order. Used by the notification worker; the
// campaign workflow itself only ever consumes whole candidate lists.
func (r *OrderRepository) GetByID(id int) (*model.CandidateOrder, error) {
	query := `
        SELECT id, order_number, customer_name, value, due_date, tags
        FROM candidate_orders
        WHERE id = $1
    `
	var o model.CandidateOrder
	err := r.DB.QueryRow(query, id).Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Value, &o.DueDate, pq.Array(&o.Tags))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// Indicators returns the dashboard header counters: orders due within the
// before-due window and orders already past due.
func (r *OrderRepository) Indicators(now time.Time) (int, int, error) {
	var dueSoon, overdue int

	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM candidate_orders WHERE due_date >= $1 AND due_date <= $2`,
		now, now.Add(beforeDueWindow),
	).Scan(&dueSoon)
	if err != nil {
		return 0, 0, err
	}

	err = r.DB.QueryRow(
		`SELECT COUNT(*) FROM candidate_orders WHERE due_date < $1`,
		now,
	).Scan(&overdue)
	if err != nil {
		return 0, 0, err
	}

	return dueSoon, overdue, nil
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)
