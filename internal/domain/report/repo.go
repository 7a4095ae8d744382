package report

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for analysis report rows.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	// GetByID returns the row regardless of is_active.
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	// List returns active rows matching the filter, newest first, plus the
	// total count before paging.
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Report, int, error)
	// SoftDelete flips is_active off; returns false when no row matched.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
}
