package history

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/respond"
)

// Handler provides HTTP handlers for the medical history.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers medical history routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patient/medical-history", h.Get)
	g.POST("/patient/medical-history", h.Setup)
}

func (h *Handler) Get(c echo.Context) error {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	hist, err := h.svc.Get(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	if hist == nil {
		// No history yet is a normal state, not an error.
		return respond.OK(c, "medical history not set up", nil)
	}
	return respond.OK(c, "medical history fetched", hist)
}

func (h *Handler) Setup(c echo.Context) error {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	var in SetupInput
	if err := c.Bind(&in); err != nil {
		return apperr.New(apperr.BadRequest, "invalid request body")
	}
	hist, created, err := h.svc.Setup(c.Request().Context(), p.UserID, in)
	if err != nil {
		return err
	}
	if created {
		return respond.Created(c, "medical history created", hist)
	}
	return respond.OK(c, "medical history updated", hist)
}
