package family

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/internal/domain/ownership"
	"github.com/dentacare/dentacare/internal/platform/apperr"
)

// Service provides business logic for family member records. Every operation
// first resolves the caller's patient row; rows belonging to other patients
// come back NotFound.
type Service struct {
	members Repository
	owners  ownership.Resolver
}

// NewService creates the family member service.
func NewService(members Repository, owners ownership.Resolver) *Service {
	return &Service{members: members, owners: owners}
}

func validateGender(g string) error {
	if !ValidGenders[g] {
		return apperr.New(apperr.BadRequest,
			fmt.Sprintf("gender must be one of Male, Female, Other; got %q", g))
	}
	return nil
}

// Create adds a family member under the caller's patient.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*Member, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.New(apperr.BadRequest, "name is required")
	}
	if in.DateOfBirth.IsZero() {
		return nil, apperr.New(apperr.BadRequest, "dateOfBirth is required")
	}
	if err := validateGender(in.Gender); err != nil {
		return nil, err
	}

	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	m := &Member{
		PatientID:   patientID,
		Name:        strings.TrimSpace(in.Name),
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Relation:    in.Relation,
	}
	if err := s.members.Create(ctx, m); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return s.members.GetByID(ctx, m.ID, patientID)
}

// List returns all family members of the caller's patient.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Member, error) {
	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	members, err := s.members.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return members, nil
}

// Get returns one family member of the caller's patient.
func (s *Service) Get(ctx context.Context, userID, memberID uuid.UUID) (*Member, error) {
	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	m, err := s.members.GetByID(ctx, memberID, patientID)
	if err != nil {
		return nil, apperr.FromDB(err, "family member not found")
	}
	return m, nil
}

// Update applies a partial update to one family member of the caller's
// patient.
func (s *Service) Update(ctx context.Context, userID, memberID uuid.UUID, in UpdateInput) (*Member, error) {
	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	m, err := s.members.GetByID(ctx, memberID, patientID)
	if err != nil {
		return nil, apperr.FromDB(err, "family member not found")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, apperr.New(apperr.BadRequest, "name must not be empty")
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.DateOfBirth != nil {
		m.DateOfBirth = *in.DateOfBirth
	}
	if in.Gender != nil {
		if err := validateGender(*in.Gender); err != nil {
			return nil, err
		}
		m.Gender = *in.Gender
	}
	if in.Relation != nil {
		m.Relation = *in.Relation
	}

	if err := s.members.Update(ctx, m); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return m, nil
}

// Delete removes one family member of the caller's patient. The delete is
// hard; dependent dental images keep their row with relative_id nulled by the
// FK, analysis reports for the member cascade away.
func (s *Service) Delete(ctx context.Context, userID, memberID uuid.UUID) error {
	patientID, err := s.owners.PatientIDForUser(ctx, userID)
	if err != nil {
		return err
	}
	deleted, err := s.members.Delete(ctx, memberID, patientID)
	if err != nil {
		return apperr.FromDB(err, "")
	}
	if !deleted {
		return apperr.New(apperr.NotFound, "family member not found")
	}
	return nil
}
