package medreport

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/internal/domain/ownership"
	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/appwrite"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/pagination"
)

// Service provides business logic for uploaded medical reports. Patients see
// only their own patient's rows; doctors and admins see any row.
type Service struct {
	reports  Repository
	owners   ownership.Resolver
	uploader appwrite.Uploader
}

// NewService creates the medical report service.
func NewService(reports Repository, owners ownership.Resolver, uploader appwrite.Uploader) *Service {
	return &Service{reports: reports, owners: owners, uploader: uploader}
}

// checkPatientAccess verifies that the principal may touch rows of the given
// patient. Rows outside the caller's reach come back NotFound, never
// Forbidden, so report ids cannot be probed.
func (s *Service) checkPatientAccess(ctx context.Context, p auth.Principal, patientID uuid.UUID) error {
	if p.Role == auth.RoleAdmin || p.Role == auth.RoleDoctor {
		return nil
	}
	own, err := s.owners.PatientIDForUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	if own != patientID {
		return apperr.New(apperr.NotFound, "medical report not found")
	}
	return nil
}

func normalizeReportType(rt string) (string, error) {
	rt = strings.TrimSpace(rt)
	if rt == "" {
		return "Other", nil
	}
	if !ValidReportTypes[rt] {
		return "", apperr.New(apperr.BadRequest, fmt.Sprintf(
			"reportType must be one of Xray, Prescription, LabReport, Scan, Other; got %q", rt))
	}
	return rt, nil
}

// Create uploads the document to the blob store and records the report row.
// The blob upload happens first; if the insert then fails the object is
// orphaned, which is accepted.
func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateInput, filename, mimeType string, content io.Reader) (*Report, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.New(apperr.BadRequest, "title is required")
	}
	if in.PatientID == uuid.Nil {
		return nil, apperr.New(apperr.BadRequest, "patientId is required")
	}
	reportType, err := normalizeReportType(in.ReportType)
	if err != nil {
		return nil, err
	}
	if err := s.checkPatientAccess(ctx, p, in.PatientID); err != nil {
		return nil, err
	}

	f, err := s.uploader.Upload(ctx, filename, mimeType, content)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		PatientID:   in.PatientID,
		UploadedBy:  p.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		FilePath:    f.URL,
		FileName:    f.Name,
		FileSize:    f.Size,
		FileType:    f.MimeType,
		ReportType:  reportType,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return s.reports.GetByID(ctx, rep.ID)
}

// ListByPatient returns one page of active reports for a patient, newest
// upload first. An unknown reportType filter yields an empty page.
func (s *Service) ListByPatient(ctx context.Context, p auth.Principal, patientID uuid.UUID, params pagination.Params, reportType string) (*pagination.Page, error) {
	if err := s.checkPatientAccess(ctx, p, patientID); err != nil {
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

// ListAll returns one page of active reports across all patients, optionally
// narrowed to one patient. Callers are gated to admins at the route.
func (s *Service) ListAll(ctx context.Context, params pagination.Params, patientID *uuid.UUID, reportType string) (*pagination.Page, error) {
	f := ListFilter{PatientID: patientID}
	if rt := strings.TrimSpace(reportType); rt != "" {
		f.ReportType = &rt
	}
	reports, total, err := s.reports.List(ctx, f, params.Limit, params.Offset())
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return pagination.NewPage(reports, total, params), nil
}

func (s *Service) getOwned(ctx context.Context, p auth.Principal, id uuid.UUID) (*Report, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "medical report not found")
	}
	if err := s.checkPatientAccess(ctx, p, rep.PatientID); err != nil {
		return nil, err
	}
	return rep, nil
}

// Download returns the stored blob URL. It works for soft-deleted rows too:
// the blob outlives the listing entry.
func (s *Service) Download(ctx context.Context, p auth.Principal, id uuid.UUID) (*Download, error) {
	rep, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return &Download{FileURL: rep.FilePath, FileName: rep.FileName, FileType: rep.FileType}, nil
}

// Update applies a partial metadata update to a report.
func (s *Service) Update(ctx context.Context, p auth.Principal, id uuid.UUID, in UpdateInput) (*Report, error) {
	rep, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.New(apperr.BadRequest, "title must not be empty")
		}
		rep.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		rep.Description = in.Description
	}
	if in.ReportType != nil {
		rt, err := normalizeReportType(*in.ReportType)
		if err != nil {
			return nil, err
		}
		rep.ReportType = rt
	}

	if err := s.reports.Update(ctx, rep); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return rep, nil
}

// Delete soft-deletes a report; the row disappears from listings but keeps
// its blob and stays downloadable.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	rep, err := s.getOwned(ctx, p, id)
	if err != nil {
		return err
	}
	deleted, err := s.reports.SoftDelete(ctx, rep.ID)
	if err != nil {
		return apperr.FromDB(err, "")
	}
	if !deleted {
		return apperr.New(apperr.NotFound, "medical report not found")
	}
	return nil
}
