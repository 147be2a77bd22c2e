// Package auth implements the mock OAuth2/OIDC endpoints.
// Every handler maps a fixed request shape to fixed or templated JSON;
// there is no real credential validation anywhere. All state is
// in-memory and lost on restart.
package auth

import (
	"sync"
	"time"

	"github.com/alexjbarnes/authmock/internal/models"
)

// Code is a pre-issued authorization code record.
type Code struct {
	Code        string
	ClientID    string
	RedirectURI string
	Scope       string
	ExpiresAt   time.Time
}

// Store holds the in-memory OAuth state: the single client registration
// and the authorization code table. Writes are idempotent (the same
// fixed values every time), so contention is benign, but the maps are
// still mutex-guarded to keep the race detector quiet.
type Store struct {
	mu      sync.RWMutex
	clients map[string]*models.ClientRegistration
	codes   map[string]*Code
}

// NewStore creates the store pre-populated with the fixed authorization
// code. Codes are never consumed or rotated; the expiry field is
// recorded but deliberately not enforced, matching the permissive
// behavior clients under test rely on.
func NewStore(fixed *Code) *Store {
	s := &Store{
		clients: make(map[string]*models.ClientRegistration),
		codes:   make(map[string]*Code),
	}
	if fixed != nil {
		s.codes[fixed.Code] = fixed
	}

	return s
}

// RegisterClient stores a client registration, overwriting any previous
// record for the same client_id.
func (s *Store) RegisterClient(reg *models.ClientRegistration) {
	s.mu.Lock()
	s.clients[reg.ClientID] = reg
	s.mu.Unlock()
}

// GetClient returns the registration for a client_id, or nil.
func (s *Store) GetClient(clientID string) *models.ClientRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[clientID]
}

// GetCode returns the authorization code record, or nil.
func (s *Store) GetCode(code string) *Code {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.codes[code]
}
