package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// RegisterInput contains the parameters for creating an account.
type RegisterInput struct {
	Name     string // Display name (required)
	Email    string // Account email (required)
	Password string // Account password (required)
}

// RegisterOutput contains the result of creating an account.
type RegisterOutput struct{}

// Register is the use case for creating a new account.
type Register struct {
	api domain.AuthAPI
}

// NewRegister creates a new Register use case.
func NewRegister(api domain.AuthAPI) *Register {
	return &Register{api: api}
}

// Execute registers an account with the given input.
func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, errors.New("name, email and password are required")
	}
	if err := uc.api.Register(ctx, in.Name, in.Email, in.Password); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &RegisterOutput{}, nil
}
