package medreport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/pagination"
	"github.com/dentacare/dentacare/pkg/respond"
)

// Handler provides HTTP handlers for medical reports.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers medical report routes on an authenticated group.
// The bare collection listing is admin-only.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/medical-reports", h.Create)
	g.GET("/medical-reports/patient/:patientId", h.ListByPatient)
	g.GET("/medical-reports/:id/download", h.Download)
	g.PUT("/medical-reports/:id", h.Update)
	g.DELETE("/medical-reports/:id", h.Delete)
	g.GET("/medical-reports", h.ListAll, auth.RequireRole(auth.RoleAdmin))
}

func principal(c echo.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}
	return p, nil
}

func reportID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.BadRequest, "invalid report id")
	}
	return id, nil
}

func (h *Handler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	patientID, err := uuid.Parse(c.FormValue("patientId"))
	if err != nil {
		return apperr.New(apperr.BadRequest, "patientId is required")
	}
	in := CreateInput{
		PatientID:  patientID,
		Title:      c.FormValue("title"),
		ReportType: c.FormValue("reportType"),
	}
	if desc := c.FormValue("description"); desc != "" {
		in.Description = &desc
	}

	file, err := c.FormFile("file")
	if err != nil {
		return apperr.New(apperr.BadRequest, "file is required")
	}
	src, err := file.Open()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "open uploaded file", err)
	}
	defer src.Close()

	rep, err := h.svc.Create(c.Request().Context(), p, in,
		file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		return err
	}
	return respond.Created(c, "medical report uploaded", rep)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return apperr.New(apperr.BadRequest, "invalid patient id")
	}
	params, err := pagination.FromContext(c, DefaultListLimit)
	if err != nil {
		return err
	}
	page, err := h.svc.ListByPatient(c.Request().Context(), p, patientID, params, c.QueryParam("reportType"))
	if err != nil {
		return err
	}
	return respond.OK(c, "medical reports fetched", page)
}

func (h *Handler) ListAll(c echo.Context) error {
	params, err := pagination.FromContext(c, DefaultListLimit)
	if err != nil {
		return err
	}
	var patientID *uuid.UUID
	if raw := c.QueryParam("patientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.New(apperr.BadRequest, "invalid patient id")
		}
		patientID = &id
	}
	page, err := h.svc.ListAll(c.Request().Context(), params, patientID, c.QueryParam("reportType"))
	if err != nil {
		return err
	}
	return respond.OK(c, "medical reports fetched", page)
}

func (h *Handler) Download(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := reportID(c)
	if err != nil {
		return err
	}
	dl, err := h.svc.Download(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return respond.OK(c, "download link fetched", dl)
}

func (h *Handler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := reportID(c)
	if err != nil {
		return err
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return apperr.New(apperr.BadRequest, "invalid request body")
	}
	rep, err := h.svc.Update(c.Request().Context(), p, id, in)
	if err != nil {
		return err
	}
	return respond.OK(c, "medical report updated", rep)
}

func (h *Handler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := reportID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return respond.OK(c, "medical report deleted", nil)
}
