package history

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for medical history rows.
type Repository interface {
	Create(ctx context.Context, h *History) error
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*History, error)
	Update(ctx context.Context, h *History) error
}
