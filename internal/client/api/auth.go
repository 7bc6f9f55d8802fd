package api

import (
	"context"
	"net/http"

	"github.com/labjournal/labctl/internal/client/models"
)

// Login exchanges credentials for a session token and the user profile.
// The call is always sent unauthenticated.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	body := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login/", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the server that the session is over. Best-effort by
// contract: callers clear local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout/", nil, nil, nil)
}
