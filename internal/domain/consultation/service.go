package consultation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/internal/domain/ownership"
	"github.com/dentacare/dentacare/internal/platform/apperr"
)

// Service provides business logic for consultation reports.
type Service struct {
	reports Repository
	owners  ownership.Resolver
}

// NewService creates the consultation report service.
func NewService(reports Repository, owners ownership.Resolver) *Service {
	return &Service{reports: reports, owners: owners}
}

// Create records a consultation under the caller's patient.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*Report, error) {
	if strings.TrimSpace(in.DoctorName) == "" {
		return nil, apperr.New(apperr.BadRequest, "doctorName is required")
	}
	if in.ConsultationDate.IsZero() {
		return nil, apperr.New(apperr.BadRequest, "consultationDate is required")
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		return nil, apperr.New(apperr.BadRequest, "diagnosis is required")
	}

	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		PatientID:        patientID,
		DoctorName:       strings.TrimSpace(in.DoctorName),
		ConsultationDate: in.ConsultationDate,
		Diagnosis:        strings.TrimSpace(in.Diagnosis),
		Prescription:     in.Prescription,
		Notes:            in.Notes,
		FollowUpDate:     in.FollowUpDate,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return s.reports.GetByID(ctx, rep.ID, patientID)
}

// List returns all consultation reports of the caller's patient, most recent
// first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Report, error) {
	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return reports, nil
}

// Get returns one consultation report of the caller's patient.
func (s *Service) Get(ctx context.Context, userID, reportID uuid.UUID) (*Report, error) {
	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rep, err := s.reports.GetByID(ctx, reportID, patientID)
	if err != nil {
		return nil, apperr.FromDB(err, "consultation report not found")
	}
	return rep, nil
}
