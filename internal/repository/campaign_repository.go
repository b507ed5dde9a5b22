package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/grupodelta/supplychain-backend/internal/errors"
	"github.com/grupodelta/supplychain-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	// Campaign CRUD
	ListCampaigns(offset, limit int, campaignType, status string) ([]*model.Campaign, int, error)
	GetByID(id int) (*model.Campaign, error)
	UpdateStatus(campaignID int, status string) error
	IncrementProgress(campaignID int) error
	Create(c *model.Campaign) error

	// Assignment stats
	GetCampaignStats(campaignID int) (map[string]int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.StatusActive
	}
	query := `
        INSERT INTO campaigns (name, type, status, goal, progress, executive_ids, order_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.DB.QueryRow(
		query,
		c.Name, c.Type, c.Status, c.Goal, c.Progress,
		pq.Array(c.ExecutiveIDs), c.OrderCount, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now(), campaignID)
	return err
}

// IncrementProgress bumps the delivery counter after a scheduled delivery
// outcome is recorded.
func (r *CampaignRepository) IncrementProgress(campaignID int) error {
	query := `UPDATE campaigns SET progress=progress+1, updated_at=NOW() WHERE id=$1`
	_, err := r.DB.Exec(query, campaignID)
	return err
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, name, type, status, goal, progress, executive_ids, order_count, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.Type, &c.Status, &c.Goal, &c.Progress,
		pq.Array(&c.ExecutiveIDs), &c.OrderCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, campaignType, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT id, name, type, status, goal, progress, executive_ids, order_count, created_at, updated_at FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if campaignType != "" {
		query += fmt.Sprintf(" AND type=$%d", argPos)
		args = append(args, campaignType)
		argPos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Type, &c.Status, &c.Goal, &c.Progress,
			pq.Array(&c.ExecutiveIDs), &c.OrderCount, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	// Count total
	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	argPosCount := 1
	if campaignType != "" {
		countQuery += fmt.Sprintf(" AND type=$%d", argPosCount)
		argsCount = append(argsCount, campaignType)
		argPosCount++
	}
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// ====================== Assignment stats ======================

func (r *CampaignRepository) GetCampaignStats(campaignID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM assignments WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"pending": 0, "notified": 0, "managed": 0, "failed": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
