package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for accounts.
type Repository interface {
	// Create inserts a new account. Unique violations on username or
	// email map to ErrUsernameTaken / ErrEmailTaken.
	Create(ctx context.Context, u *User) error

	// FindByEmail returns ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns ErrUserNotFound when no account matches.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpdateProfile applies a patch; nil fields keep their current
	// value. Unique violations map like Create. Returns the updated
	// account.
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*User, error)

	// Delete removes the account and, through cascading, its shelves.
	Delete(ctx context.Context, id uuid.UUID) error
}
