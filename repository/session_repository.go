// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/Barkerprooks/void-voyager-backend/models"
	"github.com/Barkerprooks/void-voyager-backend/utils"
	"github.com/google/uuid"
)

// InMemorySessionRepository keeps token bindings in a process-local map.
// Restarting the server drops every session, forcing players to log in
// again.
type InMemorySessionRepository struct {
	mu       sync.RWMutex
	byToken  map[string]*models.Session
	accounts map[uint]map[string]struct{} // accountID -> set of tokens
}

// NewInMemorySessionRepository creates an empty session store
func NewInMemorySessionRepository() SessionRepository {
	return &InMemorySessionRepository{
		byToken:  make(map[string]*models.Session),
		accounts: make(map[uint]map[string]struct{}),
	}
}

// Bind issues a fresh token for the account. Multiple concurrent
// sessions per account are allowed.
func (r *InMemorySessionRepository) Bind(_ context.Context, accountID uint) (*models.Session, error) {
	token, err := utils.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &models.Session{
		CorrelationID: uuid.New(),
		Token:         token,
		AccountID:     accountID,
		CreatedAt:     utils.UTCNow(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byToken[token] = session
	if r.accounts[accountID] == nil {
		r.accounts[accountID] = make(map[string]struct{})
	}
	r.accounts[accountID][token] = struct{}{}

	return session, nil
}

// Resolve looks up the session bound to token. Returns nil when the
// token is unknown or already unbound.
func (r *InMemorySessionRepository) Resolve(_ context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.byToken[token]
	if !ok {
		return nil, nil
	}

	copied := *session
	return &copied, nil
}

// Unbind removes a single token. Returns false when the token was not
// bound, so repeated logouts stay idempotent.
func (r *InMemorySessionRepository) Unbind(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.byToken[token]
	if !ok {
		return false, nil
	}

	delete(r.byToken, token)
	if tokens := r.accounts[session.AccountID]; tokens != nil {
		delete(tokens, token)
		if len(tokens) == 0 {
			delete(r.accounts, session.AccountID)
		}
	}

	return true, nil
}

// UnbindAccount removes every token bound to the account and returns
// how many were dropped.
func (r *InMemorySessionRepository) UnbindAccount(_ context.Context, accountID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokens := r.accounts[accountID]
	for token := range tokens {
		delete(r.byToken, token)
	}
	delete(r.accounts, accountID)

	return len(tokens), nil
}
