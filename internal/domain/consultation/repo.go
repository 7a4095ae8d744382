package consultation

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for consultation reports.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id, patientID uuid.UUID) (*Report, error)
	// ListByPatient returns all reports for the patient, most recent
	// consultation first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Report, error)
}
