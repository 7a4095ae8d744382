package dentalimage

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dentacare/dentacare/internal/platform/apperr"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/pagination"
	"github.com/dentacare/dentacare/pkg/respond"
)

// Handler provides HTTP handlers for dental images.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers dental image routes on an authenticated group.
// The admin subtree is role-gated.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/dental-images", h.Create)
	g.GET("/dental-images", h.List)
	g.GET("/dental-images/admin/all", h.ListAll, auth.RequireRole(auth.RoleAdmin))
	g.GET("/dental-images/admin/urls", h.ListAllURLs, auth.RequireRole(auth.RoleAdmin))
	g.GET("/dental-images/:id", h.Get)
	g.DELETE("/dental-images/:id", h.Delete)
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

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.New(apperr.BadRequest, "multipart body is required")
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		return apperr.New(apperr.BadRequest, "at least one image is required")
	}

	in := CreateInput{ImageType: c.FormValue("imageType")}
	if desc := c.FormValue("description"); desc != "" {
		in.Description = &desc
	}
	if raw := c.FormValue("relativeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.New(apperr.BadRequest, "invalid relativeId")
		}
		in.RelativeID = &id
	}

	files := make([]UploadFile, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return apperr.Wrap(apperr.Internal, "open uploaded file", err)
		}
		defer src.Close()
		files = append(files, UploadFile{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Content:  src,
		})
	}

	img, err := h.svc.Create(c.Request().Context(), p, in, files)
	if err != nil {
		return err
	}
	return respond.Created(c, "dental images uploaded", img)
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
	page, err := h.svc.List(c.Request().Context(), p, params, c.QueryParam("imageType"))
	if err != nil {
		return err
	}
	return respond.OK(c, "dental images fetched", page)
}

func (h *Handler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.New(apperr.BadRequest, "invalid image id")
	}
	img, err := h.svc.Get(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return respond.OK(c, "dental image fetched", img)
}

func (h *Handler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.New(apperr.BadRequest, "invalid image id")
	}
	if err := h.svc.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return respond.OK(c, "dental image deleted", nil)
}

func (h *Handler) ListAll(c echo.Context) error {
	params, err := pagination.FromContext(c, DefaultListLimit)
	if err != nil {
		return err
	}
	var userID *uuid.UUID
	if raw := c.QueryParam("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.New(apperr.BadRequest, "invalid user id")
		}
		userID = &id
	}
	page, err := h.svc.ListAll(c.Request().Context(), params, userID, c.QueryParam("imageType"))
	if err != nil {
		return err
	}
	return respond.OK(c, "dental images fetched", page)
}

func (h *Handler) ListAllURLs(c echo.Context) error {
	params, err := pagination.FromContext(c, DefaultListLimit)
	if err != nil {
		return err
	}
	page, err := h.svc.ListAllURLs(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return respond.OK(c, "dental image urls fetched", page)
}
