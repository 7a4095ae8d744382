package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for patient rows.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
}
