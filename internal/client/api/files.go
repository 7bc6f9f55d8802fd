package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/labjournal/labctl/internal/client/models"
)

// UploadFile stores a standalone file as multipart form data.
func (c *Client) UploadFile(ctx context.Context, filename, description string, file io.Reader) (*models.FileRecord, error) {
	var out models.FileRecord
	fields := map[string]string{}
	if description != "" {
		fields["description"] = description
	}
	if err := c.upload(ctx, "/api/files/upload/", fields, "file", filename, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Files lists stored files, optionally filtered.
func (c *Client) Files(ctx context.Context, filters url.Values) ([]models.FileRecord, error) {
	var out []models.FileRecord
	if err := c.do(ctx, http.MethodGet, "/api/files/", filters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// File fetches a single file record.
func (c *Client) File(ctx context.Context, id int64) (*models.FileRecord, error) {
	var out models.FileRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/files/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFile removes a stored file.
func (c *Client) DeleteFile(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/files/%d/", id), nil, nil, nil)
}

// SearchFiles runs a full-text search over stored files.
func (c *Client) SearchFiles(ctx context.Context, query string) ([]models.FileRecord, error) {
	var out []models.FileRecord
	q := url.Values{"q": []string{query}}
	if err := c.do(ctx, http.MethodGet, "/api/files/search/", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
