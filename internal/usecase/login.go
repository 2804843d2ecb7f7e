package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/store"
)

// LoginInput contains the credentials for authenticating.
type LoginInput struct {
	Email    string // Account email (required)
	Password string // Account password (required)
}

// LoginOutput contains the result of authenticating.
type LoginOutput struct {
	User *domain.User // The authenticated profile
}

// Login is the use case for authenticating against the tracker and
// persisting the session for later invocations.
type Login struct {
	store    *store.Store
	api      domain.AuthAPI
	sessions domain.SessionStore
	logger   domain.Logger
}

// NewLogin creates a new Login use case.
func NewLogin(s *store.Store, api domain.AuthAPI, sessions domain.SessionStore, logger domain.Logger) *Login {
	return &Login{
		store:    s,
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

// Execute authenticates with the given credentials.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	if in.Email == "" || in.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, token, err := uc.api.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if err := uc.sessions.Save(&domain.Session{User: *user, Token: token}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	uc.store.PutUser(user)
	uc.logger.Info("", "auth", fmt.Sprintf("logged in as %s", user.Email))

	return &LoginOutput{User: user}, nil
}
