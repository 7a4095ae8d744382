package appwrite

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dentacare/dentacare/internal/platform/apperr"
)

func TestUpload_Success(t *testing.T) {
	var gotPath, gotProject, gotKey, gotFileID, gotFileName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotProject = r.Header.Get("X-Appwrite-Project")
		gotKey = r.Header.Get("X-Appwrite-Key")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotFileID = r.FormValue("fileId")
		if f, fh, err := r.FormFile("file"); err == nil {
			gotFileName = fh.Filename
			f.Close()
		} else {
			t.Errorf("form file: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"$id":"stored-123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "proj", "key", "bucket", zerolog.Nop())
	f, err := c.Upload(context.Background(), "xray.pdf", "application/pdf", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/storage/buckets/bucket/files" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotProject != "proj" || gotKey != "key" {
		t.Errorf("missing appwrite headers: project=%q key=%q", gotProject, gotKey)
	}
	if gotFileID == "" {
		t.Error("expected a generated fileId field")
	}
	if gotFileName != "xray.pdf" {
		t.Errorf("expected filename xray.pdf, got %q", gotFileName)
	}
	if f.ID != "stored-123" {
		t.Errorf("expected id stored-123, got %q", f.ID)
	}
	wantURL := srv.URL + "/storage/buckets/bucket/files/stored-123/view?project=proj"
	if f.URL != wantURL {
		t.Errorf("expected url %q, got %q", wantURL, f.URL)
	}
	if f.Size != int64(len("pdf-bytes")) {
		t.Errorf("expected size %d, got %d", len("pdf-bytes"), f.Size)
	}
	if f.MimeType != "application/pdf" {
		t.Errorf("expected mime application/pdf, got %q", f.MimeType)
	}
}

func TestUpload_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "proj", "key", "bucket", zerolog.Nop())
	_, err := c.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if apperr.KindOf(err) != apperr.StorageRejected {
		t.Errorf("expected StorageRejected, got kind %v", apperr.KindOf(err))
	}
}

func TestUpload_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := NewClient(srv.URL, "proj", "key", "bucket", zerolog.Nop())
	_, err := c.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if apperr.KindOf(err) != apperr.StorageUnavailable {
		t.Errorf("expected StorageUnavailable, got kind %v", apperr.KindOf(err))
	}
}

func TestUpload_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`not-json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "proj", "key", "bucket", zerolog.Nop())
	_, err := c.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if apperr.KindOf(err) != apperr.StorageRejected {
		t.Errorf("expected StorageRejected, got kind %v", apperr.KindOf(err))
	}
}

func TestUpload_DefaultMimeType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`{"$id":"f1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "proj", "key", "bucket", zerolog.Nop())
	f, err := c.Upload(context.Background(), "blob.bin", "", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.MimeType != "application/octet-stream" {
		t.Errorf("expected fallback mime type, got %q", f.MimeType)
	}
}
