package repository

import (
	"database/sql"
	"time"

	"github.com/grupodelta/supplychain-backend/internal/model"
)

type AssignmentRepositoryInterface interface {
	Create(a *model.Assignment) error
	GetByID(id int) (*model.Assignment, error)
	UpdateStatus(id int, status, lastError string) error
	RecordOutcome(id int, outcome string) error
	ListByExecutive(executiveID int) ([]model.Assignment, error)
}

type AssignmentRepository struct {
	DB *sql.DB
}

// Create inserts a new assignment and fills in the generated ID
func (r *AssignmentRepository) Create(a *model.Assignment) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = model.AssignmentPending
	}

	query := `
        INSERT INTO assignments
        (campaign_id, order_id, executive_id, status, outcome, last_error, retry_count, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	return r.DB.QueryRow(
		query,
		a.CampaignID, a.OrderID, a.ExecutiveID, a.Status,
		a.Outcome, a.LastError, a.RetryCount, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
}

// GetByID fetches an assignment by its ID
func (r *AssignmentRepository) GetByID(id int) (*model.Assignment, error) {
	query := `
        SELECT id, campaign_id, order_id, executive_id, status, outcome, last_error, retry_count, created_at, updated_at
        FROM assignments
        WHERE id=$1
    `
	var a model.Assignment
	err := r.DB.QueryRow(query, id).Scan(
		&a.ID, &a.CampaignID, &a.OrderID, &a.ExecutiveID, &a.Status,
		&a.Outcome, &a.LastError, &a.RetryCount, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// UpdateStatus marks the notification result for an assignment
func (r *AssignmentRepository) UpdateStatus(id int, status, lastError string) error {
	query := `UPDATE assignments SET status=$1, last_error=$2, retry_count=retry_count+1, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, status, lastError, id)
	return err
}

// RecordOutcome stores the executive's management outcome and closes the
// assignment.
func (r *AssignmentRepository) RecordOutcome(id int, outcome string) error {
	query := `UPDATE assignments SET status=$1, outcome=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, model.AssignmentManaged, outcome, id)
	return err
}

// ListByExecutive returns the assignments currently on an executive's plate
func (r *AssignmentRepository) ListByExecutive(executiveID int) ([]model.Assignment, error) {
	query := `
        SELECT id, campaign_id, order_id, executive_id, status, outcome, last_error, retry_count, created_at, updated_at
        FROM assignments
        WHERE executive_id=$1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, executiveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(
			&a.ID, &a.CampaignID, &a.OrderID, &a.ExecutiveID, &a.Status,
			&a.Outcome, &a.LastError, &a.RetryCount, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

var _ AssignmentRepositoryInterface = (*AssignmentRepository)(nil)
