package query

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for query rows.
type Repository interface {
	Create(ctx context.Context, q *Query) error
	GetByID(ctx context.Context, id uuid.UUID) (*Query, error)
	ListAll(ctx context.Context) ([]*Query, error)
	ListByRole(ctx context.Context, role string) ([]*Query, error)
	UpdateMessage(ctx context.Context, id uuid.UUID, message string) error
}
