package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dentacare/dentacare/internal/domain/user"
	"github.com/dentacare/dentacare/internal/platform/appwrite"
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

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()
	var env respond.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func TestGetProfileEndpoint(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	if err := patients.Create(context.Background(), &Patient{UserID: userID, Email: strp("asha@example.com")}); err != nil {
		t.Fatal(err)
	}
	users := newMockUserRepo(&user.User{ID: userID, Name: "Asha", Role: user.RolePatient})
	svc := NewService(patients, users, &mockUploader{}, passthroughTx)
	e := newTestServer(svc, auth.Principal{UserID: userID, Role: auth.RolePatient})

	req := httptest.NewRequest(http.MethodGet, "/patient/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" || env.Code != http.StatusOK {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestGetProfileEndpointNotFound(t *testing.T) {
	svc := NewService(newMockPatientRepo(), newMockUserRepo(), &mockUploader{}, passthroughTx)
	e := newTestServer(svc, auth.Principal{UserID: uuid.New(), Role: auth.RolePatient})

	req := httptest.NewRequest(http.MethodGet, "/patient/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || env.Code != http.StatusNotFound {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestSetupProfileEndpointCreateThenUpdate(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	users := newMockUserRepo(&user.User{ID: userID, Role: user.RolePatient})
	svc := NewService(patients, users, &mockUploader{}, passthroughTx)
	e := newTestServer(svc, auth.Principal{UserID: userID, Role: auth.RolePatient})

	body := `{"name":"Asha Rao","email":"asha@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/patient/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("first setup status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/patient/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("second setup status = %d, want 200", rec.Code)
	}
}

func TestSetupProfileEndpointBadBody(t *testing.T) {
	svc := NewService(newMockPatientRepo(), newMockUserRepo(), &mockUploader{}, passthroughTx)
	e := newTestServer(svc, auth.Principal{UserID: uuid.New(), Role: auth.RolePatient})

	req := httptest.NewRequest(http.MethodPost, "/patient/profile", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func multipartImage(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadProfileImageEndpoint(t *testing.T) {
	userID := uuid.New()
	patients := newMockPatientRepo()
	if err := patients.Create(context.Background(), &Patient{UserID: userID}); err != nil {
		t.Fatal(err)
	}
	uploader := &mockUploader{file: &appwrite.File{ID: "f1", URL: "https://cloud.example/view/f1"}}
	svc := NewService(patients, newMockUserRepo(), uploader, passthroughTx)
	e := newTestServer(svc, auth.Principal{UserID: userID, Role: auth.RolePatient})

	body, contentType := multipartImage(t, "image", "me.png")
	req := httptest.NewRequest(http.MethodPost, "/patient/profile/image", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if uploader.calls != 1 {
		t.Fatalf("uploader calls = %d, want 1", uploader.calls)
	}
}

func TestUploadProfileImageEndpointMissingFile(t *testing.T) {
	svc := NewService(newMockPatientRepo(), newMockUserRepo(), &mockUploader{}, passthroughTx)
	e := newTestServer(svc, auth.Principal{UserID: uuid.New(), Role: auth.RolePatient})

	body, contentType := multipartImage(t, "wrongfield", "me.png")
	req := httptest.NewRequest(http.MethodPost, "/patient/profile/image", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
