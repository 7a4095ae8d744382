package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/pkg/respond"
)

func newTestServer(svc *Service, p auth.Principal) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = respond.ErrorHandler(zerolog.Nop())
	g := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := auth.WithPrincipal(c.Request().Context(), p)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	NewHandler(svc).RegisterRoutes(g)
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestQueryEndpointsLifecycle(t *testing.T) {
	svc := NewService(newMockRepo())
	e := newTestServer(svc, patientPrincipal)

	rec := post(e, "/query/create",
		`{"name":"Asha","email":"asha@example.com","phone":"9000000000","message":"hours?"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query/by-role", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("by-role status = %d, want 200", rec.Code)
	}

	// /query/all is admin-only.
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query/all", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("all as patient status = %d, want 403", rec.Code)
	}

	admin := newTestServer(svc, adminPrincipal)
	rec = httptest.NewRecorder()
	admin.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/query/all", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("all as admin status = %d, want 200", rec.Code)
	}
}

func TestQueryEditEndpoint(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	q := &Query{Name: "Asha", Email: "a@b.c", Phone: "9", Message: "old", Role: RoleUser}
	if err := repo.Create(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	e := newTestServer(svc, patientPrincipal)

	req := httptest.NewRequest(http.MethodPut, "/query/edit/"+q.ID.String(),
		strings.NewReader(`{"message":"new text"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("edit status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	got, _ := repo.GetByID(context.Background(), q.ID)
	if got.Message != "new text" {
		t.Fatalf("message = %q, want replaced", got.Message)
	}
}
