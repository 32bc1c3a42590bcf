package client

import (
	"context"
	"net/http"

	"socialnet/api"
)

// Register creates an account and caches the issued token.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthData, error) {
	var data api.AuthData
	if _, err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &data); err != nil {
		return nil, err
	}
	c.SetToken(data.Token)
	return &data, nil
}

// Login authenticates and caches the issued token.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthData, error) {
	var data api.AuthData
	if _, err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &data); err != nil {
		return nil, err
	}
	c.SetToken(data.Token)
	return &data, nil
}

// Logout tells the server goodbye and drops the cached token.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.ClearToken()
	return err
}

func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var data api.UserData
	if _, err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*api.User, error) {
	var data api.UserData
	if _, err := c.doJSON(ctx, http.MethodPut, "/auth/me", req, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}
