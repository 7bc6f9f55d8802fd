package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labjournal/labctl/internal/client/models"
)

// DashboardStats returns the dashboard summary block.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/analytics/dashboard/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExperimentAnalytics returns experiment aggregates over an optional period.
func (c *Client) ExperimentAnalytics(ctx context.Context, filters url.Values) (*models.ExperimentStats, error) {
	var out models.ExperimentStats
	if err := c.do(ctx, http.MethodGet, "/api/analytics/experiments/", filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserAnalytics returns user-activity aggregates over an optional period.
func (c *Client) UserAnalytics(ctx context.Context, filters url.Values) (*models.UserStats, error) {
	var out models.UserStats
	if err := c.do(ctx, http.MethodGet, "/api/analytics/users/", filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProtocolAnalytics returns protocol aggregates over an optional period.
func (c *Client) ProtocolAnalytics(ctx context.Context, filters url.Values) (*models.ProtocolStats, error) {
	var out models.ProtocolStats
	if err := c.do(ctx, http.MethodGet, "/api/analytics/protocols/", filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export downloads an analytics export in the requested format. The payload
// is returned verbatim; interpreting it is the caller's concern.
func (c *Client) Export(ctx context.Context, format models.ExportFormat, filters url.Values) ([]byte, error) {
	path := fmt.Sprintf("/api/analytics/export/%s/", format)
	return c.doRaw(ctx, http.MethodGet, path, filters)
}
