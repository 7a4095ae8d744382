package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/internal/domain/ownership"
	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/pagination"
)

// Service provides business logic for analysis reports.
type Service struct {
	reports Repository
	owners  ownership.Resolver
}

// NewService creates the analysis report service.
func NewService(reports Repository, owners ownership.Resolver) *Service {
	return &Service{reports: reports, owners: owners}
}

// decodeSubject turns the client's relativeId sentinel into a Subject.
// Absent, empty, or "0" selects the patient themselves; anything else must
// parse as a family member id.
func decodeSubject(relativeID *string) (Subject, error) {
	if relativeID == nil {
		return Subject{Kind: SubjectSelf}, nil
	}
	raw := strings.TrimSpace(*relativeID)
	if raw == "" || raw == "0" {
		return Subject{Kind: SubjectSelf}, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return Subject{}, apperr.New(apperr.BadRequest, "invalid relativeId")
	}
	return Subject{Kind: SubjectFamily, FamilyID: &id}, nil
}

func (s *Service) targetPatient(ctx context.Context, p auth.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if p.Role == auth.RoleAdmin || p.Role == auth.RoleDoctor {
		if requested == nil {
			return uuid.Nil, apperr.New(apperr.BadRequest, "patientId is required")
		}
		return *requested, nil
	}
	own, err := s.owners.PatientIDForUser(ctx, p.UserID)
	if err != nil {
		return uuid.Nil, err
	}
	if requested != nil && *requested != own {
		return uuid.Nil, apperr.New(apperr.NotFound, "patient not found")
	}
	return own, nil
}

// Create stores one analysis result. boundingBoxData must be present and
// parseable JSON; its shape is not interpreted. The subject's display name is
// denormalized onto the row at write time.
func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateInput) (*Report, error) {
	reportType := strings.TrimSpace(in.ReportType)
	if !ValidReportTypes[reportType] {
		return nil, apperr.New(apperr.BadRequest, fmt.Sprintf(
			"reportType must be one of oral_diagnosis, dental_analysis, teeth_detection, cavity_detection, plaque_detection, other; got %q",
			in.ReportType))
	}
	if len(in.BoundingBoxData) == 0 {
		return nil, apperr.New(apperr.BadRequest, "boundingBoxData is required")
	}
	if !json.Valid(in.BoundingBoxData) {
		return nil, apperr.New(apperr.BadRequest, "boundingBoxData must be valid JSON")
	}

	subject, err := decodeSubject(in.RelativeID)
	if err != nil {
		return nil, err
	}
	patientID, err := s.targetPatient(ctx, p, in.PatientID)
	if err != nil {
		return nil, err
	}

	var relativeName string
	if subject.Kind == SubjectFamily {
		relativeName, err = s.owners.FamilyMemberName(ctx, *subject.FamilyID, patientID)
	} else {
		relativeName, err = s.owners.PatientDisplayName(ctx, patientID)
	}
	if err != nil {
		return nil, err
	}

	rep := &Report{
		PatientID:       patientID,
		Subject:         subject,
		RelativeName:    relativeName,
		ReportType:      reportType,
		BoundingBoxData: in.BoundingBoxData,
		Images:          in.Images,
		Summary:         in.Summary,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return s.reports.GetByID(ctx, rep.ID)
}

// List returns one page of the caller's active analysis reports, newest
// first. An unknown reportType filter yields an empty page.
func (s *Service) List(ctx context.Context, p auth.Principal, params pagination.Params, reportType string) (*pagination.Page, error) {
	patientID, err := s.owners.PatientIDForUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	f := ListFilter{PatientID: &patientID}
	if rt := strings.TrimSpace(reportType); rt != "" {
		f.ReportType = &rt
	}
	reports, total, err := s.reports.List(ctx, f, params.Limit, params.Offset())
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return pagination.NewPage(reports, total, params), nil
}

// Get returns one analysis report reachable through the caller's ownership
// chain. Admins and doctors can fetch any row.
func (s *Service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*Report, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "analysis report not found")
	}
	if p.Role == auth.RoleAdmin || p.Role == auth.RoleDoctor {
		return rep, nil
	}
	own, err := s.owners.PatientIDForUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if rep.PatientID != own {
		return nil, apperr.New(apperr.NotFound, "analysis report not found")
	}
	return rep, nil
}

// Delete soft-deletes one analysis report.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	rep, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}
	deleted, err := s.reports.SoftDelete(ctx, rep.ID)
	if err != nil {
		return apperr.FromDB(err, "")
	}
	if !deleted {
		return apperr.New(apperr.NotFound, "analysis report not found")
	}
	return nil
}
