package repository

import (
	"database/sql"

	"github.com/grupodelta/supplychain-backend/internal/model"
)

// ExecutiveRepositoryInterface is the executive directory consumed by the
// campaign workflow and the admin panel.
type ExecutiveRepositoryInterface interface {
	GetByID(id int) (*model.Executive, error)
	ListAll() ([]model.Executive, error)
	AvailableIDs() (map[int]bool, error)
	ToggleAvailability(id int) (*model.Executive, error)
}

// ExecutiveRepository is the concrete implementation
type ExecutiveRepository struct {
	DB *sql.DB
}

// GetByID fetches an executive by ID
func (r *ExecutiveRepository) GetByID(id int) (*model.Executive, error) {
	query := `
        SELECT id, name, email, available, assigned_orders, completed_deliveries
        FROM executives
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var e model.Executive
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Available, &e.AssignedOrders, &e.CompletedDeliveries); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &e, nil
}

// ListAll fetches all executives with their workload counters
func (r *ExecutiveRepository) ListAll() ([]model.Executive, error) {
	query := `
        SELECT id, name, email, available, assigned_orders, completed_deliveries
        FROM executives
        ORDER BY id
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	executives := []model.Executive{}
	for rows.Next() {
		var e model.Executive
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Available, &e.AssignedOrders, &e.CompletedDeliveries); err != nil {
			return nil, err
		}
		executives = append(executives, e)
	}
	return executives, rows.Err()
}

// AvailableIDs returns the set of currently-available executive ids. Used at
// confirm time to validate campaign assignments.
func (r *ExecutiveRepository) AvailableIDs() (map[int]bool, error) {
	rows, err := r.DB.Query(`SELECT id FROM executives WHERE available = true`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	available := map[int]bool{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		available[id] = true
	}
	return available, rows.Err()
}

// ToggleAvailability flips an executive's availability and returns the
// updated row.
func (r *ExecutiveRepository) ToggleAvailability(id int) (*model.Executive, error) {
	query := `
        UPDATE executives
        SET available = NOT available
        WHERE id = $1
        RETURNING id, name, email, available, assigned_orders, completed_deliveries
    `
	var e model.Executive
	err := r.DB.QueryRow(query, id).Scan(&e.ID, &e.Name, &e.Email, &e.Available, &e.AssignedOrders, &e.CompletedDeliveries)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

var _ ExecutiveRepositoryInterface = (*ExecutiveRepository)(nil)
