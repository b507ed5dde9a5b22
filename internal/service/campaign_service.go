// internal/service/campaign_service.go
package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	appErrors "github.com/grupodelta/supplychain-backend/internal/errors"
	"github.com/grupodelta/supplychain-backend/internal/model"
	"github.com/grupodelta/supplychain-backend/internal/queue"
	"github.com/grupodelta/supplychain-backend/internal/repository"
	"github.com/grupodelta/supplychain-backend/internal/review"
	"github.com/grupodelta/supplychain-backend/internal/rules"
)

type CampaignService struct {
	OrderRepo      repository.OrderRepositoryInterface
	ExecutiveRepo  repository.ExecutiveRepositoryInterface
	CampaignRepo   repository.CampaignRepositoryInterface
	AssignmentRepo repository.AssignmentRepositoryInterface
	Queue          queue.Queue
	Sessions       *SessionStore
	ReviewConfig   review.Config

	// Now is the clock used for classification; overridable in tests.
	Now func() time.Time
}

// ReviewSummary reports the result of generating a review.
type ReviewSummary struct {
	SessionID   string `json:"session_id"`
	Ready       int    `json:"ready"`
	Exceptions  int    `json:"exceptions"`
	Preselected int    `json:"preselected"`
}

// ConfirmResult is what activation hands back to the caller.
type ConfirmResult struct {
	Campaign    *model.Campaign    `json:"campaign"`
	Assignments []model.Assignment `json:"assignments"`
}

func (s *CampaignService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CampaignService) notify(event queue.Event) {
	if s.Queue == nil {
		return
	}
	// Fire and forget; the workflow never depends on sink delivery.
	if err := s.Queue.Publish(queue.TopicNotifications, event); err != nil {
		log.Println("⚠️ notification dropped:", err)
	}
}

// StartDraft opens a new campaign creation session seeded with the default
// exclusion rules.
func (s *CampaignService) StartDraft(name, campaignType string, goal int, executiveIDs []int) (*DraftSession, error) {
	if campaignType != model.CampaignBeforeDue && campaignType != model.CampaignOverdue {
		return nil, appErrors.NewValidation("type", fmt.Sprintf("must be %q or %q", model.CampaignBeforeDue, model.CampaignOverdue))
	}
	return s.Sessions.Create(strings.TrimSpace(name), campaignType, goal, executiveIDs), nil
}

// ListRules returns the session's rules in registry order.
func (s *CampaignService) ListRules(sessionID string) ([]model.ExclusionRule, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Registry.List(), nil
}

// ToggleRule flips one exclusion rule. Only allowed while configuring the
// draft; during review the rule set is frozen.
func (s *CampaignService) ToggleRule(sessionID, ruleID string) (model.ExclusionRule, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return model.ExclusionRule{}, err
	}
	if session.State != SessionDraft {
		return model.ExclusionRule{}, appErrors.NewInvalidState(session.State, "toggle rule")
	}

	rule, err := session.Registry.Toggle(ruleID)
	if err != nil {
		return model.ExclusionRule{}, err
	}

	s.notify(queue.Event{
		Kind:      queue.EventRulesToggled,
		SessionID: session.ID,
		Message:   fmt.Sprintf("rule %q is now enabled=%t", rule.Name, rule.Enabled),
	})
	return rule, nil
}

// GenerateReview pulls the candidate orders for the campaign type, runs the
// classifier over the enabled rules and opens the decision ledger. The
// session moves to reviewing.
//
// The order source call is all-or-nothing: if it fails, no partial
// classification is kept and the session stays in draft.
func (s *CampaignService) GenerateReview(sessionID string) (*ReviewSummary, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != SessionDraft {
		return nil, appErrors.NewInvalidState(session.State, "generate review")
	}

	orders, err := s.OrderRepo.ListCandidates(session.Type, s.now())
	if err != nil {
		return nil, err
	}

	results := rules.Classify(orders, session.Registry.List(), s.now())
	ledger := review.NewLedger(orders, results, s.ReviewConfig)

	session.Orders = orders
	session.Results = results
	session.Ledger = ledger
	session.State = SessionReviewing

	summary := &ReviewSummary{
		SessionID:   session.ID,
		Ready:       len(orders) - ledger.Len(),
		Exceptions:  ledger.Len(),
		Preselected: ledger.SelectedCount(),
	}

	s.notify(queue.Event{
		Kind:      queue.EventReviewGenerated,
		SessionID: session.ID,
		Message:   fmt.Sprintf("%d ready, %d exceptions to review", summary.Ready, summary.Exceptions),
	})
	return summary, nil
}

// ReviewItems returns the exception listing in the requested order.
func (s *CampaignService) ReviewItems(sessionID, sortKey string) ([]review.Item, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != SessionReviewing {
		return nil, appErrors.NewInvalidState(session.State, "list review items")
	}
	return session.Ledger.Items(sortKey), nil
}

// ToggleDecision flips the include/exclude choice for one exception order.
func (s *CampaignService) ToggleDecision(sessionID string, orderID int) (model.ExceptionDecision, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return model.ExceptionDecision{}, err
	}
	if session.State != SessionReviewing {
		return model.ExceptionDecision{}, appErrors.NewInvalidState(session.State, "toggle decision")
	}
	return session.Ledger.Toggle(orderID)
}

// ToggleAllDecisions flips the aggregate selection and returns the resulting
// selected state.
func (s *CampaignService) ToggleAllDecisions(sessionID string) (bool, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return false, err
	}
	if session.State != SessionReviewing {
		return false, appErrors.NewInvalidState(session.State, "toggle all decisions")
	}
	return session.Ledger.ToggleAll(), nil
}

// Back returns a reviewing session to draft, discarding the classifier
// output and the ledger. Rule toggles and entered fields survive.
func (s *CampaignService) Back(sessionID string) (*DraftSession, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != SessionReviewing {
		return nil, appErrors.NewInvalidState(session.State, "go back to draft")
	}

	session.Orders = nil
	session.Results = nil
	session.Ledger = nil
	session.State = SessionDraft
	return session, nil
}

// Confirm activates the campaign: validates the draft, checks executive
// availability against the directory, closes the ledger, persists the
// campaign and fans the final order set out as assignments.
func (s *CampaignService) Confirm(sessionID string) (*ConfirmResult, error) {
	session, err := s.Sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != SessionReviewing {
		return nil, appErrors.NewInvalidState(session.State, "confirm campaign")
	}

	if err := s.validateDraft(session); err != nil {
		s.notify(queue.Event{
			Kind:      queue.EventValidationFailed,
			SessionID: session.ID,
			Message:   err.Error(),
		})
		return nil, err
	}

	if err := s.checkExecutives(session.ExecutiveIDs); err != nil {
		s.notify(queue.Event{
			Kind:      queue.EventValidationFailed,
			SessionID: session.ID,
			Message:   err.Error(),
		})
		return nil, err
	}

	selected, err := session.Ledger.Confirm()
	if err != nil {
		return nil, err
	}

	finalOrders := mergeFinalOrders(session.Orders, session.Results, selected)

	executiveIDs := make([]int64, len(session.ExecutiveIDs))
	for i, id := range session.ExecutiveIDs {
		executiveIDs[i] = int64(id)
	}
	campaign := &model.Campaign{
		Name:         session.Name,
		Type:         session.Type,
		Status:       model.StatusActive,
		Goal:         session.Goal,
		ExecutiveIDs: executiveIDs,
		OrderCount:   len(finalOrders),
	}
	if err := s.CampaignRepo.Create(campaign); err != nil {
		return nil, err
	}

	assignments := make([]model.Assignment, 0, len(finalOrders))
	for i, order := range finalOrders {
		a := model.Assignment{
			CampaignID:  campaign.ID,
			OrderID:     order.ID,
			ExecutiveID: session.ExecutiveIDs[i%len(session.ExecutiveIDs)],
			Status:      model.AssignmentPending,
		}
		if err := s.AssignmentRepo.Create(&a); err != nil {
			log.Println("⚠️ failed to create assignment for order", order.ID, ":", err)
			continue
		}

		if s.Queue != nil {
			if err := s.Queue.Publish(queue.TopicAssignments, a.ID); err != nil {
				log.Println("⚠️ failed to enqueue assignment ID", a.ID, ":", err)
			}
		}
		assignments = append(assignments, a)
	}

	s.Sessions.Drop(session.ID)

	s.notify(queue.Event{
		Kind:       queue.EventCampaignActivated,
		SessionID:  session.ID,
		CampaignID: campaign.ID,
		Message:    fmt.Sprintf("campaign %q activated with %d orders", campaign.Name, len(assignments)),
	})
	return &ConfirmResult{Campaign: campaign, Assignments: assignments}, nil
}

func (s *CampaignService) validateDraft(session *DraftSession) error {
	if strings.TrimSpace(session.Name) == "" {
		return appErrors.NewValidation("name", "must not be empty")
	}
	if session.Goal <= 0 {
		return appErrors.NewValidation("goal", "must be a positive integer")
	}
	if len(session.ExecutiveIDs) == 0 {
		return appErrors.NewValidation("executive_ids", "at least one executive must be assigned")
	}
	return nil
}

func (s *CampaignService) checkExecutives(executiveIDs []int) error {
	available, err := s.ExecutiveRepo.AvailableIDs()
	if err != nil {
		return err
	}

	unavailable := []int{}
	for _, id := range executiveIDs {
		if !available[id] {
			unavailable = append(unavailable, id)
		}
	}
	if len(unavailable) > 0 {
		return appErrors.NewUnavailableExecutive(unavailable)
	}
	return nil
}

// mergeFinalOrders joins every ready order with the selected exceptions,
// preserving classifier order.
func mergeFinalOrders(orders []model.CandidateOrder, results []model.ClassificationResult, selected []int) []model.CandidateOrder {
	selectedSet := make(map[int]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	outcomes := make(map[int]string, len(results))
	for _, res := range results {
		outcomes[res.OrderID] = res.Outcome
	}

	final := []model.CandidateOrder{}
	for _, order := range orders {
		switch outcomes[order.ID] {
		case model.OutcomeReady:
			final = append(final, order)
		case model.OutcomeException:
			if selectedSet[order.ID] {
				final = append(final, order)
			}
		}
	}
	return final
}

// PauseCampaign pauses an active campaign.
func (s *CampaignService) PauseCampaign(campaignID int) (*model.Campaign, error) {
	return s.transitionCampaign(campaignID, model.StatusPaused, "pause campaign", model.StatusActive)
}

// CompleteCampaign closes an active or paused campaign.
func (s *CampaignService) CompleteCampaign(campaignID int) (*model.Campaign, error) {
	return s.transitionCampaign(campaignID, model.StatusCompleted, "complete campaign", model.StatusActive, model.StatusPaused)
}

func (s *CampaignService) transitionCampaign(campaignID int, to, action string, validFrom ...string) (*model.Campaign, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, from := range validFrom {
		if campaign.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, appErrors.NewInvalidState(campaign.Status, action)
	}

	if err := s.CampaignRepo.UpdateStatus(campaignID, to); err != nil {
		return nil, err
	}
	campaign.Status = to
	return campaign, nil
}

// RecordOutcome stores an executive's management outcome on an assignment.
// A scheduled delivery also advances the campaign progress counter.
func (s *CampaignService) RecordOutcome(assignmentID int, outcome string) (*model.Assignment, error) {
	if !model.ValidOutcome(outcome) {
		return nil, appErrors.NewValidation("outcome", fmt.Sprintf("unknown outcome %q", outcome))
	}

	assignment, err := s.AssignmentRepo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, appErrors.NewAssignmentNotFound(assignmentID)
	}

	if err := s.AssignmentRepo.RecordOutcome(assignmentID, outcome); err != nil {
		return nil, err
	}
	assignment.Status = model.AssignmentManaged
	assignment.Outcome = outcome

	if outcome == model.OutcomeDeliveryScheduled {
		if err := s.CampaignRepo.IncrementProgress(assignment.CampaignID); err != nil {
			log.Println("⚠️ failed to bump campaign progress:", err)
		}
	}
	return assignment, nil
}
