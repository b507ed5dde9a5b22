package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/grupodelta/supplychain-backend/internal/controller"
	"github.com/grupodelta/supplychain-backend/internal/model"
	"github.com/grupodelta/supplychain-backend/internal/review"
	"github.com/grupodelta/supplychain-backend/internal/service"
)

// --- Mock Repositories ---

type MockOrderRepo struct{}

func (m *MockOrderRepo) ListCandidates(campaignType string, now time.Time) ([]model.CandidateOrder, error) {
	return []model.CandidateOrder{
		{ID: 1, OrderNumber: "PED-2024-001", CustomerName: "PEMEX", Value: 75000, DueDate: now.Add(24 * time.Hour), Tags: []string{"VIP"}},
		{ID: 2, OrderNumber: "PED-2024-015", CustomerName: "CFE", Value: 30000, DueDate: now.Add(120 * time.Hour)},
	}, nil
}

func (m *MockOrderRepo) Indicators(now time.Time) (int, int, error) {
	return 2, 0, nil
}

type MockExecutiveRepo struct{}

func (m *MockExecutiveRepo) GetByID(id int) (*model.Executive, error) {
	return &model.Executive{ID: id, Available: true}, nil
}

func (m *MockExecutiveRepo) ListAll() ([]model.Executive, error) {
	return []model.Executive{{ID: 1, Name: "Maria Gonzalez", Available: true}}, nil
}

func (m *MockExecutiveRepo) AvailableIDs() (map[int]bool, error) {
	return map[int]bool{1: true}, nil
}

func (m *MockExecutiveRepo) ToggleAvailability(id int) (*model.Executive, error) {
	return &model.Executive{ID: id, Available: false}, nil
}

// --- Helpers ---

func newRouter() *chi.Mux {
	svc := &service.CampaignService{
		OrderRepo:     &MockOrderRepo{},
		ExecutiveRepo: &MockExecutiveRepo{},
		Sessions:      service.NewSessionStore(),
		ReviewConfig:  review.DefaultConfig(),
	}
	ctrl := &controller.CampaignController{CampaignService: svc}

	r := chi.NewRouter()
	r.Post("/campaigns/draft", ctrl.StartDraft)
	r.Get("/campaigns/draft/{id}/rules", ctrl.ListRules)
	r.Post("/campaigns/draft/{id}/rules/{ruleID}/toggle", ctrl.ToggleRule)
	r.Post("/campaigns/draft/{id}/review", ctrl.GenerateReview)
	r.Get("/campaigns/draft/{id}/review", ctrl.ReviewItems)
	r.Post("/campaigns/draft/{id}/review/{orderID}/toggle", ctrl.ToggleDecision)
	r.Post("/campaigns/draft/{id}/review/toggle-all", ctrl.ToggleAllDecisions)
	r.Post("/campaigns/draft/{id}/back", ctrl.Back)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- Test Functions ---

func TestDraftWorkflowEndpoints(t *testing.T) {
	r := newRouter()

	// Open a draft
	w := do(t, r, "POST", "/campaigns/draft", map[string]interface{}{
		"name":          "June Push",
		"type":          model.CampaignBeforeDue,
		"goal":          100,
		"executive_ids": []int{1},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("start draft: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var draft struct {
		SessionID string                `json:"session_id"`
		State     string                `json:"state"`
		Rules     []model.ExclusionRule `json:"rules"`
	}
	if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
		t.Fatal(err)
	}
	if draft.State != service.SessionDraft {
		t.Errorf("expected draft state, got %s", draft.State)
	}
	if len(draft.Rules) != 3 {
		t.Errorf("expected 3 default rules, got %d", len(draft.Rules))
	}

	// Disable the high value rule
	w = do(t, r, "POST", "/campaigns/draft/"+draft.SessionID+"/rules/high_value/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle rule: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var rule model.ExclusionRule
	if err := json.NewDecoder(w.Body).Decode(&rule); err != nil {
		t.Fatal(err)
	}
	if rule.Enabled {
		t.Error("expected high_value disabled after toggle")
	}

	// Generate the review
	w = do(t, r, "POST", "/campaigns/draft/"+draft.SessionID+"/review", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate review: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var summary service.ReviewSummary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatal(err)
	}
	// Order 1 trips vip_customer and critical_date; order 2 nothing
	if summary.Exceptions != 1 || summary.Ready != 1 {
		t.Errorf("expected 1 exception and 1 ready, got %d and %d", summary.Exceptions, summary.Ready)
	}

	// List the exceptions
	w = do(t, r, "GET", "/campaigns/draft/"+draft.SessionID+"/review?sort=value", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("review items: expected 200, got %d", w.Code)
	}

	// Toggle the exception decision
	w = do(t, r, "POST", "/campaigns/draft/"+draft.SessionID+"/review/1/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle decision: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Back to draft
	w = do(t, r, "POST", "/campaigns/draft/"+draft.SessionID+"/back", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("back: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestErrorStatusMapping(t *testing.T) {
	r := newRouter()

	// Unknown session: 404
	w := do(t, r, "GET", "/campaigns/draft/no-such-session/rules", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown session: expected 404, got %d", w.Code)
	}

	// Invalid campaign type: 400
	w = do(t, r, "POST", "/campaigns/draft", map[string]interface{}{
		"name": "Bad", "type": "someday", "goal": 10, "executive_ids": []int{1},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid type: expected 400, got %d", w.Code)
	}

	// Create a real draft, then hit review-only endpoints while still in draft: 409
	w = do(t, r, "POST", "/campaigns/draft", map[string]interface{}{
		"name": "June Push", "type": model.CampaignBeforeDue, "goal": 100, "executive_ids": []int{1},
	})
	var draft struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
		t.Fatal(err)
	}

	w = do(t, r, "GET", "/campaigns/draft/"+draft.SessionID+"/review", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("review items in draft: expected 409, got %d", w.Code)
	}

	w = do(t, r, "POST", "/campaigns/draft/"+draft.SessionID+"/review/toggle-all", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("toggle-all in draft: expected 409, got %d", w.Code)
	}

	// Unknown rule on a real session: 404
	w = do(t, r, "POST", "/campaigns/draft/"+draft.SessionID+"/rules/no_such_rule/toggle", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown rule: expected 404, got %d", w.Code)
	}
}
