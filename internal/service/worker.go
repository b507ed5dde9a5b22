package service

import (
	"log"
	"strconv"

	"github.com/grupodelta/supplychain-backend/internal/model"
)

// AssignmentRepo defines the methods the worker needs
type AssignmentRepo interface {
	GetByID(id int) (*model.Assignment, error)
	UpdateStatus(id int, status, lastError string) error
}

// Worker notifies executives of newly created assignments
type Worker struct {
	AssignmentRepo AssignmentRepo
	JobChan        <-chan int
	SendFunc       func(msg string) bool
}

// Constructor
func NewWorker(repo AssignmentRepo, jobChan <-chan int, sendFunc func(msg string) bool) *Worker {
	return &Worker{
		AssignmentRepo: repo,
		JobChan:        jobChan,
		SendFunc:       sendFunc,
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	for jobID := range w.JobChan {
		assignment, err := w.AssignmentRepo.GetByID(jobID)
		if err != nil {
			log.Println("Failed to get assignment:", err)
			continue
		}
		if assignment == nil {
			log.Println("Assignment not found for job:", jobID)
			continue
		}

		msg := RenderTemplate("Order {order_id} assigned to you for management", map[string]string{
			"order_id": strconv.Itoa(assignment.OrderID),
		})
		success := w.SendFunc(msg)
		if success {
			w.AssignmentRepo.UpdateStatus(assignment.ID, model.AssignmentNotified, "")
		} else {
			w.AssignmentRepo.UpdateStatus(assignment.ID, model.AssignmentFailed, "notification send failed")
		}
	}
}
