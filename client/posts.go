package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"socialnet/api"
)

func (c *Client) ListPosts(ctx context.Context, page, limit int) (*api.PostPage, error) {
	var data api.PostPage
	if _, err := c.doJSON(ctx, http.MethodGet, "/posts"+pageQuery(page, limit), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) GetPost(ctx context.Context, id uint64) (*api.Post, error) {
	var data api.PostData
	if _, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &data); err != nil {
		return nil, err
	}
	return data.Post, nil
}

// CreatePost publishes a post as a multipart form. image may be nil; when
// set, imageName carries the original filename so the server can check its
// extension.
func (c *Client) CreatePost(ctx context.Context, content string, image io.Reader, imageName string) (*api.Post, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("content", content); err != nil {
		return nil, err
	}
	if image != nil {
		part, err := form.CreateFormFile("image", imageName)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, image); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	var data api.PostData
	if _, err := c.do(ctx, http.MethodPost, "/posts", &buf, form.FormDataContentType(), &data); err != nil {
		return nil, err
	}
	return data.Post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id uint64, content string) (*api.Post, error) {
	var data api.PostData
	req := api.UpdatePostRequest{Content: content}
	if _, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), req, &data); err != nil {
		return nil, err
	}
	return data.Post, nil
}

func (c *Client) DeletePost(ctx context.Context, id uint64) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
	return err
}

func (c *Client) ToggleLike(ctx context.Context, id uint64) (*api.LikeResult, error) {
	var data api.LikeResult
	if _, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", id), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) ListComments(ctx context.Context, postID uint64, page, limit int) (*api.CommentPage, error) {
	var data api.CommentPage
	path := fmt.Sprintf("/posts/%d/comments", postID) + pageQuery(page, limit)
	if _, err := c.doJSON(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) CreateComment(ctx context.Context, postID uint64, content string) (*api.Comment, error) {
	var data api.CommentData
	req := api.CreateCommentRequest{Content: content}
	if _, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), req, &data); err != nil {
		return nil, err
	}
	return data.Comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID uint64) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/posts/comments/%d", commentID), nil, nil)
	return err
}
