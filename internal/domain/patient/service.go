package patient

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dentacare/dentacare/internal/domain/user"
	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/appwrite"
)

// TxRunner executes fn inside a database transaction. Production wires
// db.RunInTx; tests use a passthrough.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Service provides business logic for patient profiles.
type Service struct {
	patients Repository
	users    user.Repository
	uploader appwrite.Uploader
	inTx     TxRunner
}

// NewService creates the patient profile service.
func NewService(patients Repository, users user.Repository, uploader appwrite.Uploader, inTx TxRunner) *Service {
	return &Service{patients: patients, users: users, uploader: uploader, inTx: inTx}
}

// GetProfile returns the caller's patient row joined with its user row.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB(err, "patient profile not found")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB(err, "user not found")
	}
	return &Profile{Patient: p, User: u}, nil
}

// SetupProfile finds or creates the caller's patient row and applies a
// partial update. The returned flag is true when the row was created. The
// find-or-create runs in a transaction; a concurrent first-time setup loses
// on the unique (user_id) index and surfaces as Conflict.
func (s *Service) SetupProfile(ctx context.Context, userID uuid.UUID, in SetupInput) (*Profile, bool, error) {
	// Empty-string emails are treated as absent and stored as NULL.
	if in.Email != nil && *in.Email == "" {
		in.Email = nil
	}

	created := false
	err := s.inTx(ctx, func(ctx context.Context) error {
		p, err := s.patients.GetByUserID(ctx, userID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			p = &Patient{UserID: userID, Email: in.Email}
			if err := s.patients.Create(ctx, p); err != nil {
				return apperr.FromDB(err, "")
			}
			created = true
		case err != nil:
			return apperr.FromDB(err, "")
		default:
			if in.Email != nil {
				p.Email = in.Email
			}
			if err := s.patients.Update(ctx, p); err != nil {
				return apperr.FromDB(err, "")
			}
		}

		name, phone, gender := in.Name, (*string)(nil), (*string)(nil)
		if in.User != nil {
			if in.User.Name != nil {
				name = in.User.Name
			}
			phone = in.User.Phone
			gender = in.User.Gender
		}
		if name != nil || phone != nil || gender != nil {
			if err := s.users.UpdateProfile(ctx, userID, name, phone, gender); err != nil {
				return apperr.FromDB(err, "")
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return profile, created, nil
}

// SetProfileImage uploads the image to the blob store and records its URL on
// the caller's patient row.
func (s *Service) SetProfileImage(ctx context.Context, userID uuid.UUID, filename, mimeType string, content io.Reader) (*Patient, error) {
	p, err := s.patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB(err, "patient profile not found")
	}

	f, err := s.uploader.Upload(ctx, filename, mimeType, content)
	if err != nil {
		return nil, err
	}

	p.ProfileImage = &f.URL
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return p, nil
}
