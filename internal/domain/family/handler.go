package family

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/respond"
)

// Handler provides HTTP handlers for family members.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers family member routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/patient/family", h.Create)
	g.GET("/patient/family", h.List)
	g.GET("/patient/family/:id", h.Get)
	g.PUT("/patient/family/:id", h.Update)
	g.DELETE("/patient/family/:id", h.Delete)
}

func principal(c echo.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	return p, nil
}

func memberID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.BadRequest, "invalid family member id")
	}
	return id, nil
}

func (h *Handler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return apperr.New(apperr.BadRequest, "invalid request body")
	}
	m, err := h.svc.Create(c.Request().Context(), p.UserID, in)
	if err != nil {
		return err
	}
	return respond.Created(c, "family member added", m)
}

func (h *Handler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	members, err := h.svc.List(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return respond.OK(c, "family members fetched", members)
}

func (h *Handler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := memberID(c)
	if err != nil {
		return err
	}
	m, err := h.svc.Get(c.Request().Context(), p.UserID, id)
	if err != nil {
		return err
	}
	return respond.OK(c, "family member fetched", m)
}

func (h *Handler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := memberID(c)
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return apperr.New(apperr.BadRequest, "invalid request body")
	}
	m, err := h.svc.Update(c.Request().Context(), p.UserID, id, in)
	if err != nil {
		return err
	}
	return respond.OK(c, "family member updated", m)
}

func (h *Handler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := memberID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), p.UserID, id); err != nil {
		return err
	}
	return respond.OK(c, "family member deleted", nil)
}
