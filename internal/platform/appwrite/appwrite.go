// Package appwrite is the gateway to the hosted object store. It uploads a
// single binary per call and returns a direct-view URL; it is stateless and
// never retries. Orphaned objects from multi-file operations that fail midway
// are tolerated and collected out of band.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dentacare/dentacare/internal/platform/apperr"
)

// File describes one stored object.
type File struct {
	ID       string `json:"fileId"`
	URL      string `json:"fileUrl"`
	Name     string `json:"fileName"`
	Size     int64  `json:"fileSize"`
	MimeType string `json:"fileType"`
}

// Uploader is the seam services depend on.
type Uploader interface {
	Upload(ctx context.Context, filename, mimeType string, content io.Reader) (*File, error)
}

// Client talks to an Appwrite storage bucket.
type Client struct {
	endpoint string
	project  string
	key      string
	bucket   string
	http     *http.Client
	logger   zerolog.Logger
}

// NewClient creates a gateway for the configured bucket.
func NewClient(endpoint, project, key, bucket string, logger zerolog.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		project:  project,
		key:      key,
		bucket:   bucket,
		http:     &http.Client{Timeout: 60 * time.Second},
		logger:   logger,
	}
}

type createFileResponse struct {
	ID string `json:"$id"`
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload stores one file in the bucket under a fresh random id and returns
// its metadata with a direct-view URL.
func (c *Client) Upload(ctx context.Context, filename, mimeType string, content io.Reader) (*File, error) {
	fileID := uuid.New().String()
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("fileId", fileID); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "encode upload request", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "encode upload request", err)
	}
	size, err := io.Copy(part, content)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "read upload content", err)
	}
	if err := w.Close(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "encode upload request", err)
	}

	url := fmt.Sprintf("%s/storage/buckets/%s/files", c.endpoint, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "build upload request", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Appwrite-Project", c.project)
	req.Header.Set("X-Appwrite-Key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.StorageUnavailable, "storage service unavailable", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("file_name", filename).
			Str("response", string(respBody)).
			Msg("storage upload rejected")
		return nil, apperr.New(apperr.StorageRejected,
			fmt.Sprintf("storage rejected upload with status %d", resp.StatusCode))
	}

	var created createFileResponse
	if err := json.Unmarshal(respBody, &created); err != nil || created.ID == "" {
		return nil, apperr.Wrap(apperr.StorageRejected, "storage returned an unreadable response", err)
	}

	return &File{
		ID:       created.ID,
		URL:      c.ViewURL(created.ID),
		Name:     filename,
		Size:     size,
		MimeType: mimeType,
	}, nil
}

// ViewURL returns the direct-view URL for an object id in the bucket.
func (c *Client) ViewURL(fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s",
		c.endpoint, c.bucket, fileID, c.project)
}
