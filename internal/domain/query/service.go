package query

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
)

// Service provides business logic for the contact-query inbox. The row's
// role always comes from the token: patients file as "user", doctors as
// "doctor", and admins read but never file.
type Service struct {
	queries Repository
}

// NewService creates the query inbox service.
func NewService(queries Repository) *Service {
	return &Service{queries: queries}
}

// normalizeRole maps a token role onto a query role. Admins have no query
// role of their own.
func normalizeRole(tokenRole string) (string, error) {
	switch tokenRole {
	case auth.RolePatient:
		return RoleUser, nil
	case auth.RoleDoctor:
		return RoleDoctor, nil
	default:
		return "", apperr.New(apperr.Forbidden, "only patients and doctors can file queries")
	}
}

// Create files a query under the caller's role.
func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateInput) (*Query, error) {
	role, err := normalizeRole(p.Role)
	if err != nil {
		return nil, err
	}
	for name, v := range map[string]string{
		"name": in.Name, "email": in.Email, "phone": in.Phone, "message": in.Message,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, apperr.New(apperr.BadRequest, name+" is required")
		}
	}

	q := &Query{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
		Role:    role,
	}
	if err := s.queries.Create(ctx, q); err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return s.queries.GetByID(ctx, q.ID)
}

// ListAll returns every query, newest first. Callers are gated to admins at
// the route.
func (s *Service) ListAll(ctx context.Context) ([]*Query, error) {
	queries, err := s.queries.ListAll(ctx)
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return queries, nil
}

// ListByRole returns the queries filed under the caller's role.
func (s *Service) ListByRole(ctx context.Context, p auth.Principal) ([]*Query, error) {
	role, err := normalizeRole(p.Role)
	if err != nil {
		return nil, err
	}
	queries, err := s.queries.ListByRole(ctx, role)
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return queries, nil
}

// Edit replaces the message of a query. Admins can edit any query; other
// callers only those filed under their own role.
func (s *Service) Edit(ctx context.Context, p auth.Principal, id uuid.UUID, in EditInput) (*Query, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, apperr.New(apperr.BadRequest, "message is required")
	}

	q, err := s.queries.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "query not found")
	}
	if p.Role != auth.RoleAdmin {
		role, err := normalizeRole(p.Role)
		if err != nil {
			return nil, err
		}
		if q.Role != role {
			return nil, apperr.New(apperr.NotFound, "query not found")
		}
	}

	if err := s.queries.UpdateMessage(ctx, id, strings.TrimSpace(in.Message)); err != nil {
		return nil, apperr.FromDB(err, "query not found")
	}
	return s.queries.GetByID(ctx, id)
}
