package client

import (
	"context"
	"fmt"
	"net/http"

	"socialnet/api"
)

func (c *Client) ListUsers(ctx context.Context, page, limit int) (*api.UserPage, error) {
	var data api.UserPage
	if _, err := c.doJSON(ctx, http.MethodGet, "/users"+pageQuery(page, limit), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) GetUser(ctx context.Context, id uint64) (*api.User, error) {
	var data api.UserData
	if _, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

func (c *Client) ListUserPosts(ctx context.Context, userID uint64, page, limit int) (*api.PostPage, error) {
	var data api.PostPage
	path := fmt.Sprintf("/users/%d/posts", userID) + pageQuery(page, limit)
	if _, err := c.doJSON(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) ToggleFollow(ctx context.Context, userID uint64) (*api.FollowResult, error) {
	var data api.FollowResult
	if _, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/users/%d/follow", userID), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
