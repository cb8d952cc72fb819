package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for accounts.
type Service interface {
	// SignUp registers a new account and issues a bearer token.
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error)

	// SignIn verifies credentials and issues a bearer token.
	SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error)

	// Profile returns the account's public profile.
	Profile(ctx context.Context, id uuid.UUID) (*UserDTO, error)

	// EditProfile re-verifies the password and updates profile fields.
	EditProfile(ctx context.Context, id uuid.UUID, req EditProfileRequest) (*UserDTO, error)

	// DeleteAccount removes the account permanently.
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
