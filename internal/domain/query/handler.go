package query

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/respond"
)

// Handler provides HTTP handlers for the query inbox.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers query inbox routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/query/create", h.Create)
	g.GET("/query/all", h.ListAll, auth.RequireRole(auth.RoleAdmin))
	g.GET("/query/by-role", h.ListByRole)
	g.PUT("/query/edit/:id", h.Edit)
}

func principal(c echo.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	return p, nil
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
	q, err := h.svc.Create(c.Request().Context(), p, in)
	if err != nil {
		return err
	}
	return respond.Created(c, "query submitted", q)
}

func (h *Handler) ListAll(c echo.Context) error {
	queries, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return respond.OK(c, "queries fetched", queries)
}

func (h *Handler) ListByRole(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	queries, err := h.svc.ListByRole(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond.OK(c, "queries fetched", queries)
}

func (h *Handler) Edit(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.New(apperr.BadRequest, "invalid query id")
	}
	var in EditInput
	if err := c.Bind(&in); err != nil {
		return apperr.New(apperr.BadRequest, "invalid request body")
	}
	q, err := h.svc.Edit(c.Request().Context(), p, id, in)
	if err != nil {
		return err
	}
	return respond.OK(c, "query updated", q)
}
