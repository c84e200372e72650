package accounts

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists User records. Create returns a
// web.ValidationError when a username or email is already taken; the
// unique indexes on the users table are the single source of truth, so
// concurrent registrations cannot slip past the check.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
