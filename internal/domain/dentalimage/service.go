package dentalimage

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/internal/domain/ownership"
	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/appwrite"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/pagination"
)

// UploadFile is one file of a multi-file capture upload.
type UploadFile struct {
	Name     string
	MimeType string
	Content  io.Reader
}

// Service provides business logic for dental image sessions. Rows are keyed
// by the uploading user; only the owner and admins can reach them.
type Service struct {
	images   Repository
	owners   ownership.Resolver
	uploader appwrite.Uploader
}

// NewService creates the dental image service.
func NewService(images Repository, owners ownership.Resolver, uploader appwrite.Uploader) *Service {
	return &Service{images: images, owners: owners, uploader: uploader}
}

// Create uploads every file of the session in order and records one row with
// the ordered URLs. Uploads fail fast: the first failure aborts the whole
// operation, no row is written, and earlier objects are left orphaned in the
// store. A relativeId must name a family member of the caller's patient.
func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateInput, files []UploadFile) (*Image, error) {
	if strings.TrimSpace(in.ImageType) == "" {
		return nil, apperr.New(apperr.BadRequest, "imageType is required")
	}
	if len(files) == 0 {
		return nil, apperr.New(apperr.BadRequest, "at least one image is required")
	}

	if in.RelativeID != nil {
		patientID, err := s.owners.PatientIDForUser(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		if _, err := s.owners.FamilyMemberName(ctx, *in.RelativeID, patientID); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		stored, err := s.uploader.Upload(ctx, f.Name, f.MimeType, f.Content)
		if err != nil {
			return nil, err
		}
		urls = append(urls, stored.URL)
	}

	img := &Image{
		UserID:      p.UserID,
		RelativeID:  in.RelativeID,
		ImageURLs:   urls,
		Description: in.Description,
		ImageType:   strings.TrimSpace(in.ImageType),
	}
	if err := s.images.Create(ctx, img); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return s.images.GetByID(ctx, img.ID)
}

// List returns one page of the caller's active image sessions, newest first.
// An unknown imageType filter yields an empty page.
func (s *Service) List(ctx context.Context, p auth.Principal, params pagination.Params, imageType string) (*pagination.Page, error) {
	f := ListFilter{UserID: &p.UserID, ActiveOnly: true}
	if it := strings.TrimSpace(imageType); it != "" {
		f.ImageType = &it
	}
	images, total, err := s.images.List(ctx, f, params.Limit, params.Offset())
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return pagination.NewPage(images, total, params), nil
}

// Get returns one image session. The owner and admins can fetch it even
// after a soft delete; everyone else gets NotFound.
func (s *Service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*Image, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "dental image not found")
	}
	if img.UserID != p.UserID && p.Role != auth.RoleAdmin {
		return nil, apperr.New(apperr.NotFound, "dental image not found")
	}
	return img, nil
}

// Delete soft-deletes one image session of the caller (or any, for admins).
func (s *Service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	img, err := s.Get(ctx, p, id)
	if err != nil {
		return err
	}
	deleted, err := s.images.SoftDelete(ctx, img.ID)
	if err != nil {
		return apperr.FromDB(err, "")
	}
	if !deleted {
		return apperr.New(apperr.NotFound, "dental image not found")
	}
	return nil
}

// ListAll returns one page of active sessions across all users, optionally
// narrowed to one user. Callers are gated to admins at the route.
func (s *Service) ListAll(ctx context.Context, params pagination.Params, userID *uuid.UUID, imageType string) (*pagination.Page, error) {
	f := ListFilter{UserID: userID, ActiveOnly: true}
	if it := strings.TrimSpace(imageType); it != "" {
		f.ImageType = &it
	}
	images, total, err := s.images.List(ctx, f, params.Limit, params.Offset())
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return pagination.NewPage(images, total, params), nil
}

// ListAllURLs returns the flattened blob URLs of one page of active sessions.
// The pagination block still counts sessions, not URLs.
func (s *Service) ListAllURLs(ctx context.Context, params pagination.Params) (*pagination.Page, error) {
	images, total, err := s.images.List(ctx, ListFilter{ActiveOnly: true}, params.Limit, params.Offset())
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	urls := []string{}
	for _, img := range images {
		urls = append(urls, img.ImageURLs...)
	}
	return pagination.NewPage(urls, total, params), nil
}
