// Package session keeps the shopper's authentication state and mirrors it into
// durable key-value storage so it survives a reload.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/storage"
)

const (
	KeyUser  = "user"
	KeyToken = "token"
)

type Store struct {
	mu    sync.RWMutex
	user  *domain.User
	token string

	kv storage.KV
}

// NewStore returns a logged-out session backed by kv.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// LoginSuccess records the user and token and writes both, JSON encoded, to
// durable storage. Callers invoke it only after the accounts API accepted the
// credentials.
func (s *Store) LoginSuccess(ctx context.Context, user domain.User, token string) error {
	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user failed: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUser, userJSON); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return s.SetToken(ctx, token)
}

// Logout clears the state and removes both durable entries.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	errUser := s.kv.Delete(ctx, KeyUser)
	errToken := s.kv.Delete(ctx, KeyToken)
	if err := errors.Join(errUser, errToken); err != nil {
		return fmt.Errorf("clear session storage: %w", err)
	}
	return nil
}

// State returns a snapshot of the session.
func (s *Store) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := domain.SessionState{Token: s.token}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	st.IsLoggedIn = st.User != nil && st.Token != ""
	return st
}

// SetToken makes token the current token and persists it as the durable
// token. The user is left as is.
func (s *Store) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token failed: %w", err)
	}
	if err := s.kv.Set(ctx, KeyToken, tokenJSON); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Token returns the in-memory token, falling back to the durable one.
// An empty string with a nil error means no token is known.
func (s *Store) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		return token, nil
	}
	return s.durableToken(ctx)
}

// Restore rehydrates the state from durable storage, as a page load would.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.durableToken(ctx)
	if err != nil {
		return err
	}

	var user *domain.User
	raw, err := s.kv.Get(ctx, KeyUser)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return fmt.Errorf("read user: %w", err)
	default:
		var u domain.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return fmt.Errorf("unmarshal user failed: %w", err)
		}
		user = &u
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Store) durableToken(ctx context.Context) (string, error) {
	raw, err := s.kv.Get(ctx, KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return decodeToken(raw), nil
}

// decodeToken accepts both the JSON-quoted form written by this package and a
// bare token written by older clients.
func decodeToken(raw []byte) string {
	var token string
	if err := json.Unmarshal(raw, &token); err == nil {
		return token
	}
	return string(raw)
}
