// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/grupodelta/supplychain-backend/internal/controller"
	"github.com/grupodelta/supplychain-backend/internal/db"
	"github.com/grupodelta/supplychain-backend/internal/handler"
	"github.com/grupodelta/supplychain-backend/internal/queue"
	"github.com/grupodelta/supplychain-backend/internal/repository"
	"github.com/grupodelta/supplychain-backend/internal/review"
	"github.com/grupodelta/supplychain-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()
	q := queue.NewInMemoryQueue()

	orderRepo := &repository.OrderRepository{DB: db.DB}
	executiveRepo := &repository.ExecutiveRepository{DB: db.DB}
	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	assignmentRepo := &repository.AssignmentRepository{DB: db.DB}

	queue.StartNotificationSubscriber(q)
	queue.StartAssignmentSubscriber(q, assignmentRepo)

	campaignService := &service.CampaignService{
		OrderRepo:      orderRepo,
		ExecutiveRepo:  executiveRepo,
		CampaignRepo:   campaignRepo,
		AssignmentRepo: assignmentRepo,
		Queue:          q,
		Sessions:       service.NewSessionStore(),
		ReviewConfig:   review.DefaultConfig(),
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
	}

	campaignHandler := &handler.CampaignHandler{
		Repo:    campaignRepo,
		Service: campaignService,
	}

	r := chi.NewRouter()

	// Campaign creation workflow
	r.Post("/campaigns/draft", campaignController.StartDraft)
	r.Get("/campaigns/draft/{id}/rules", campaignController.ListRules)
	r.Post("/campaigns/draft/{id}/rules/{ruleID}/toggle", campaignController.ToggleRule)
	r.Post("/campaigns/draft/{id}/review", campaignController.GenerateReview)
	r.Get("/campaigns/draft/{id}/review", campaignController.ReviewItems)
	r.Post("/campaigns/draft/{id}/review/{orderID}/toggle", campaignController.ToggleDecision)
	r.Post("/campaigns/draft/{id}/review/toggle-all", campaignController.ToggleAllDecisions)
	r.Post("/campaigns/draft/{id}/back", campaignController.Back)
	r.Post("/campaigns/draft/{id}/confirm", campaignController.Confirm)

	// Campaign collection
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignHandler.GetCampaignHandlerWithStats)
	r.Post("/campaigns/{id}/pause", campaignController.PauseCampaign)
	r.Post("/campaigns/{id}/complete", campaignController.CompleteCampaign)

	// Executives & assignments
	r.Get("/executives", campaignController.ListExecutives)
	r.Get("/executives/{id}/assignments", campaignController.ExecutiveAssignments)
	r.Post("/executives/{id}/toggle", campaignController.ToggleExecutive)
	r.Post("/assignments/{id}/outcome", campaignController.RecordOutcome)

	// Dashboard indicators
	r.Get("/orders/indicators", campaignController.OrderIndicators)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
