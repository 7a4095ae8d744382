package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for user rows.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// UpdateProfile applies a partial update; nil fields keep prior values.
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, gender *string) error
}
