package mem

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tripdesk/internal/checkout"
	"tripdesk/internal/providers"
)

// SessionActivity is the cart line a checkout session was started with.
type SessionActivity struct {
	ActivityID     string
	RateID         string
	PartySize      int
	PickupRequired bool
	PickupLocation string
}

// CheckoutSession is the whole in-flight checkout: the step machine with
// its answer trees, the single draft buffer for the traveler slot being
// edited, and the payment handle once the booking has been submitted.
// Sessions are ephemeral; successful payment deletes them.
type CheckoutSession struct {
	ID         string
	Activities []SessionActivity
	Sequencer  *checkout.Sequencer

	// Draft edit state. DraftSlot is the slot being edited, -1 for the
	// "add next traveler" affordance; the draft never survives a commit
	// or a reopen.
	Draft     checkout.Draft
	DraftSlot int

	Handle        *providers.PaymentHandle
	OrderID       uuid.UUID
	ReferenceCode string
	AccessCode    string
}

type SessionStore interface {
	Put(session *CheckoutSession, ttl time.Duration)

	// Get returns the session if present and not expired; expired
	// entries are dropped on access.
	Get(id string) (*CheckoutSession, bool)

	Delete(id string)
}

type entry struct {
	session   *CheckoutSession
	expiresAt time.Time
}

type CheckoutSessions struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewCheckoutSessions() *CheckoutSessions {
	return &CheckoutSessions{
		data: make(map[string]entry),
	}
}

func (s *CheckoutSessions) Put(session *CheckoutSession, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = entry{
		session:   session,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *CheckoutSessions) Get(id string) (*CheckoutSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return nil, false
	}
	return e.session, true
}

func (s *CheckoutSessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}
