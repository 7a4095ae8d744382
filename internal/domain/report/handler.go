package report

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/pagination"
	"github.com/dentacare/dentacare/pkg/respond"
)

// Handler provides HTTP handlers for analysis reports.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers analysis report routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/reports", h.Create)
	g.GET("/reports", h.List)
	g.GET("/reports/:id", h.Get)
	g.DELETE("/reports/:id", h.Delete)
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
	rep, err := h.svc.Create(c.Request().Context(), p, in)
	if err != nil {
		return err
	}
	return respond.Created(c, "analysis report stored", rep)
}

func (h *Handler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	params, err := pagination.FromContext(c, DefaultListLimit)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), p, params, c.QueryParam("reportType"))
	if err != nil {
		return err
	}
	return respond.OK(c, "analysis reports fetched", page)
}

func (h *Handler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.New(apperr.BadRequest, "invalid report id")
	}
	rep, err := h.svc.Get(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return respond.OK(c, "analysis report fetched", rep)
}

func (h *Handler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.New(apperr.BadRequest, "invalid report id")
	}
	if err := h.svc.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return respond.OK(c, "analysis report deleted", nil)
}
