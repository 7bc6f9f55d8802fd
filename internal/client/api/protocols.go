package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labjournal/labctl/internal/client/models"
)

// Protocols lists protocols, optionally filtered (category, status, search).
func (c *Client) Protocols(ctx context.Context, filters url.Values) ([]models.Protocol, error) {
	var out []models.Protocol
	if err := c.do(ctx, http.MethodGet, "/api/protocols/", filters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Protocol fetches a single protocol.
func (c *Client) Protocol(ctx context.Context, id int64) (*models.Protocol, error) {
	var out models.Protocol
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/protocols/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProtocol creates a protocol and returns the stored record.
func (c *Client) CreateProtocol(ctx context.Context, in models.NewProtocol) (*models.Protocol, error) {
	var out models.Protocol
	if err := c.do(ctx, http.MethodPost, "/api/protocols/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProtocol patches a protocol.
func (c *Client) UpdateProtocol(ctx context.Context, id int64, patch models.ProtocolUpdate) (*models.Protocol, error) {
	var out models.Protocol
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/protocols/%d/", id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProtocol removes a protocol.
func (c *Client) DeleteProtocol(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/protocols/%d/", id), nil, nil, nil)
}

// Versions lists the append-only revision history of a protocol.
func (c *Client) Versions(ctx context.Context, protocolID int64) ([]models.ProtocolVersion, error) {
	var out []models.ProtocolVersion
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/protocols/%d/versions/", protocolID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateVersion appends a revision; the service assigns the version number.
func (c *Client) CreateVersion(ctx context.Context, protocolID int64, in models.NewProtocolVersion) (*models.ProtocolVersion, error) {
	var out models.ProtocolVersion
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/protocols/%d/versions/", protocolID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
