package backend

import (
	"context"
	"fmt"

	"github.com/guonaihong/gout"

	"github.com/akash06959/agronova/internal/domain"
)

// LoginResponse mirrors POST /auth/login.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

// Login authenticates a user account.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"username": username, "password": password}
	err := c.do(ctx, gout.POST(c.url("/auth/login")).SetJSON(body), &out, "login")
	return out, err
}

// Register creates a user account. Registration never logs in.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, gout.POST(c.url("/auth/register")).SetJSON(body), nil, "register")
}

// ListUsers returns all backend accounts (admin screen).
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, gout.GET(c.url("/users/")), &out, "list users")
	return out, err
}

// UpdateMe patches the calling user's profile.
func (c *Client) UpdateMe(ctx context.Context, token string, patch map[string]interface{}) (domain.User, error) {
	var out domain.User
	df := gout.PUT(c.url("/users/me")).
		SetHeader(gout.H{"Authorization": "Bearer " + token}).
		SetJSON(patch)
	err := c.do(ctx, df, &out, "update profile")
	return out, err
}

// DeleteUser removes an account by id (admin screen).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, gout.DELETE(c.url(fmt.Sprintf("/users/%d", id))), nil, "delete user")
}
