package queue

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/grupodelta/supplychain-backend/internal/model"
	"github.com/grupodelta/supplychain-backend/internal/repository"
)

// StartAssignmentSubscriber processes in-process assignment jobs: it looks
// the assignment up, notifies the executive and records the result. The
// durable path through RabbitMQ (cmd/worker) does the same for deployments
// where the server and the worker run separately.
func StartAssignmentSubscriber(q Queue, assignmentRepo repository.AssignmentRepositoryInterface) {
	go func() {
		err := q.Subscribe(TopicAssignments, func(payload any) error {
			// Payload is the assignment ID
			assignmentID, ok := payload.(int)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected int")
				return nil // no retry
			}

			log.Println("📩 Processing queued assignment ID:", assignmentID)

			assignment, err := assignmentRepo.GetByID(assignmentID)
			if err != nil {
				log.Println("⚠️ Failed to fetch assignment:", err)
				return err
			}
			if assignment == nil {
				log.Println("⚠️ Assignment not found for ID:", assignmentID)
				return nil // no retry
			}

			// TODO: Replace MockSender with the real executive notification channel
			err = MockSender(assignment.OrderID)
			if err != nil {
				log.Println("⚠️ Failed to notify executive:", err)
				_ = assignmentRepo.UpdateStatus(assignmentID, model.AssignmentFailed, err.Error())
				return err // triggers retry in queue
			}

			err = assignmentRepo.UpdateStatus(assignmentID, model.AssignmentNotified, "")
			if err != nil {
				log.Println("⚠️ Failed to update assignment status:", err)
				return err // retry
			}

			log.Println("✅ Assignment processed successfully:", assignmentID)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for campaign_assignments:", err)
		}
	}()
}

// MockSender simulates notifying an executive with 90% success
func MockSender(payload any) error {
	r := rand.Float64()
	if r < 0.9 {
		return nil // success
	}
	return fmt.Errorf("mock notification failed")
}
