package family

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for family member rows. Reads are
// always scoped to a patient id so ownership is enforced in the query itself.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id, patientID uuid.UUID) (*Member, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id, patientID uuid.UUID) (bool, error)
}
