// internal/service/session.go
package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/grupodelta/supplychain-backend/internal/errors"
	"github.com/grupodelta/supplychain-backend/internal/model"
	"github.com/grupodelta/supplychain-backend/internal/review"
	"github.com/grupodelta/supplychain-backend/internal/rules"
)

// Session states of the campaign creation workflow. A confirmed campaign
// leaves the session store and lives in the campaigns table from then on.
const (
	SessionDraft     = "draft"
	SessionReviewing = "reviewing"
)

// DraftSession is one in-progress campaign creation workflow. Each session
// owns its rule registry and decision ledger; nothing is shared across
// sessions, so no locking is needed inside one.
type DraftSession struct {
	ID           string
	Name         string
	Type         string
	Goal         int
	ExecutiveIDs []int
	State        string
	Registry     *rules.Registry

	// Populated while reviewing, discarded on Back.
	Orders  []model.CandidateOrder
	Results []model.ClassificationResult
	Ledger  *review.Ledger

	CreatedAt time.Time
}

// SessionStore keeps the live draft sessions keyed by id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*DraftSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*DraftSession)}
}

// Create registers a new draft session and returns it.
func (s *SessionStore) Create(name, campaignType string, goal int, executiveIDs []int) *DraftSession {
	session := &DraftSession{
		ID:           uuid.NewString(),
		Name:         name,
		Type:         campaignType,
		Goal:         goal,
		ExecutiveIDs: executiveIDs,
		State:        SessionDraft,
		Registry:     rules.NewRegistry(rules.DefaultRules()),
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

// Get looks up a session by id.
func (s *SessionStore) Get(id string) (*DraftSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.NewSessionNotFound(id)
	}
	return session, nil
}

// Drop discards a session. Abandoning a draft needs no other cleanup; the
// session holds no external resources.
func (s *SessionStore) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
