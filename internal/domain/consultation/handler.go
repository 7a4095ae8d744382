package consultation

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/respond"
)

// Handler provides HTTP handlers for consultation reports.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers consultation routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/patient/consultation", h.Create)
	g.GET("/patient/consultation", h.List)
	g.GET("/patient/consultation/:id", h.Get)
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
	rep, err := h.svc.Create(c.Request().Context(), p.UserID, in)
	if err != nil {
		return err
	}
	return respond.Created(c, "consultation recorded", rep)
}

func (h *Handler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	reports, err := h.svc.List(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return respond.OK(c, "consultations fetched", reports)
}

func (h *Handler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.New(apperr.BadRequest, "invalid consultation id")
	}
	rep, err := h.svc.Get(c.Request().Context(), p.UserID, id)
	if err != nil {
		return err
	}
	return respond.OK(c, "consultation fetched", rep)
}
