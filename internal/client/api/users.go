package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labjournal/labctl/internal/client/models"
)

// Profile returns the authenticated user. Also used by the session manager
// to validate a restored credential.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/profile/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches the authenticated user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, patch models.UserUpdate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPatch, "/api/users/profile/", nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return c.do(ctx, http.MethodPost, "/api/users/change-password/", nil, body, nil)
}

// Users lists user records, optionally filtered (role, department,
// is_verified, search, ordering).
func (c *Client) Users(ctx context.Context, filters url.Values) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/", filters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// User fetches a single user record.
func (c *Client) User(ctx context.Context, id int64) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser patches another user's record (moderation surface).
func (c *Client) UpdateUser(ctx context.Context, id int64, patch models.UserUpdate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/users/%d/", id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user record.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d/", id), nil, nil, nil)
}

// UserStats returns account aggregates.
func (c *Client) UserStats(ctx context.Context) (*models.UserStats, error) {
	var out models.UserStats
	if err := c.do(ctx, http.MethodGet, "/api/users/stats/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleVerification flips the is_verified flag on an account.
func (c *Client) ToggleVerification(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/toggle-verification/", id), nil, nil, nil)
}

// ChangeRole assigns a new laboratory role to an account.
func (c *Client) ChangeRole(ctx context.Context, id int64, role models.Role) error {
	body := map[string]models.Role{"role": role}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/change-role/", id), nil, body, nil)
}
