// Package auth signs shoppers in against the agency accounts API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/somnath11som/webeF/internal/domain"
	"github.com/somnath11som/webeF/internal/remote"
	"go.uber.org/zap"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrLoginFailed        = errors.New("login failed")
)

// Authenticator is the accounts sign-in endpoint.
type Authenticator interface {
	SignIn(ctx context.Context, req remote.SignInRequest) (*remote.SignInResponse, error)
}

// SessionWriter receives a successful login.
type SessionWriter interface {
	LoginSuccess(ctx context.Context, user domain.User, token string) error
}

// LoginError carries the message the accounts API gave for a refusal.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	if e.Message == "" {
		return ErrLoginFailed.Error()
	}
	return fmt.Sprintf("%s: %s", ErrLoginFailed, e.Message)
}

func (e *LoginError) Unwrap() error { return ErrLoginFailed }

type Service struct {
	accounts Authenticator
	logger   *zap.Logger
}

func NewService(accounts Authenticator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{accounts: accounts, logger: logger}
}

// Login checks the credentials and, when the accounts API accepts them,
// records the user and token on sess.
func (s *Service) Login(ctx context.Context, sess SessionWriter, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	resp, err := s.accounts.SignIn(ctx, remote.SignInRequest{Email: email, Password: password})
	if err != nil {
		s.logger.Warn("sign-in request failed", zap.Error(err))
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.Status != remote.StatusOK {
		return nil, &LoginError{Message: resp.Message}
	}
	if resp.User == nil || resp.Token == "" {
		s.logger.Warn("sign-in response without user or token")
		return nil, &LoginError{Message: "incomplete response from accounts service"}
	}

	if err := sess.LoginSuccess(ctx, *resp.User, resp.Token); err != nil {
		// the in-memory session is already set; only the mirror failed
		s.logger.Error("persist session failed", zap.String("user_id", resp.User.ID), zap.Error(err))
	}
	s.logger.Info("user signed in", zap.String("user_id", resp.User.ID))
	return resp.User, nil
}
