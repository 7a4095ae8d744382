package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/respond"
)

// Handler provides HTTP handlers for the patient profile.
type Handler struct {
	svc *Service
}

// NewHandler creates the patient profile handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers profile routes on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patient/profile", h.GetProfile)
	g.POST("/patient/profile", h.SetupProfile)
	g.POST("/patient/profile/image", h.UploadProfileImage)
}

func (h *Handler) GetProfile(c echo.Context) error {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	profile, err := h.svc.GetProfile(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}
	return respond.OK(c, "profile fetched", profile)
}

func (h *Handler) SetupProfile(c echo.Context) error {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	var in SetupInput
	if err := c.Bind(&in); err != nil {
		return apperr.New(apperr.BadRequest, "invalid request body")
	}
	profile, created, err := h.svc.SetupProfile(c.Request().Context(), p.UserID, in)
	if err != nil {
		return err
	}
	if created {
		return respond.Created(c, "profile created", profile)
	}
	return respond.OK(c, "profile updated", profile)
}

func (h *Handler) UploadProfileImage(c echo.Context) error {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	file, err := c.FormFile("image")
	if err != nil {
		return apperr.New(apperr.BadRequest, "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "open uploaded file", err)
	}
	defer src.Close()

	updated, err := h.svc.SetProfileImage(c.Request().Context(), p.UserID,
		file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		return err
	}
	return respond.OK(c, "profile image updated", updated)
}
