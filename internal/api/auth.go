package api

import (
	"context"
	"net/http"

	"github.com/in1011558-byte/book-order-system/pkg/domain"
)

// AuthResult is a successful authentication response.
type AuthResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// RegisterRequest carries the new-account profile.
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	Organization string `json:"organization,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// Login authenticates a regular user account.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", payload, &resp); err != nil {
		return AuthResult{}, err
	}
	return resp, nil
}

// Register creates a user account and returns its first session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResult, error) {
	var resp AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, &resp); err != nil {
		return AuthResult{}, err
	}
	return resp, nil
}

// AdminLogin authenticates an administrator account.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (AuthResult, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/admin/login", "", payload, &resp); err != nil {
		return AuthResult{}, err
	}
	if resp.User.Username == "" {
		resp.User.Username = username
	}
	return resp, nil
}
