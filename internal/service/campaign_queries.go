// internal/service/campaign_queries.go
package service

import (
	"time"

	"github.com/grupodelta/supplychain-backend/internal/model"
)

type CampaignDetails struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Status       string         `json:"status"`
	Goal         int            `json:"goal"`
	Progress     int            `json:"progress"`
	ExecutiveIDs []int64        `json:"executive_ids"`
	OrderCount   int            `json:"order_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at"`
	Stats        map[string]int `json:"stats"`
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, campaignType, status string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, campaignType, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

// ListExecutiveAssignments returns one executive together with the
// assignments currently on their plate. A nil executive means the id is
// unknown.
func (s *CampaignService) ListExecutiveAssignments(executiveID int) (*model.Executive, []model.Assignment, error) {
	executive, err := s.ExecutiveRepo.GetByID(executiveID)
	if err != nil {
		return nil, nil, err
	}
	if executive == nil {
		return nil, nil, nil
	}

	assignments, err := s.AssignmentRepo.ListByExecutive(executiveID)
	if err != nil {
		return nil, nil, err
	}
	return executive, assignments, nil
}

// GetCampaignDetailsWithStats returns a campaign together with its
// assignment counters grouped by status.
func (s *CampaignService) GetCampaignDetailsWithStats(campaignID int) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	stats, err := s.CampaignRepo.GetCampaignStats(campaignID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range stats {
		total += count
	}
	stats["total"] = total

	return &CampaignDetails{
		ID:           campaign.ID,
		Name:         campaign.Name,
		Type:         campaign.Type,
		Status:       campaign.Status,
		Goal:         campaign.Goal,
		Progress:     campaign.Progress,
		ExecutiveIDs: campaign.ExecutiveIDs,
		OrderCount:   campaign.OrderCount,
		CreatedAt:    campaign.CreatedAt,
		UpdatedAt:    campaign.UpdatedAt,
		Stats:        stats,
	}, nil
}
