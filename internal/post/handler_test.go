package post

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/api"
	"socialnet/internal/common"
)

func newTestRouter(t *testing.T) (*mux.Router, *MockPostService, *MockImageStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockSvc := NewMockPostService(ctrl)
	mockImages := NewMockImageStore(ctrl)

	router := mux.NewRouter()
	NewHandler(mockSvc, mockImages, false).Register(router)
	return router, mockSvc, mockImages
}

func authToken(t *testing.T, userID uint64) string {
	t.Helper()
	token, err := common.GenerateToken(userID, "tester")
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) (*httptest.ResponseRecorder, api.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var resp api.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}

// multipartBody builds the form the create endpoint accepts: a content field
// plus an optional image part.
func multipartBody(t *testing.T, content string, imageName string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("content", content))
	if imageName != "" {
		part, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestHandler_List(t *testing.T) {
	router, mockSvc, _ := newTestRouter(t)

	mockSvc.EXPECT().List(gomock.Any(), 1, 10, uint64(0)).
		Return(&api.PostPage{Posts: []api.Post{{ID: 1}}, Pagination: api.Pagination{CurrentPage: 1}}, nil)

	w, resp := doJSON(t, router, "GET", "/posts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestHandler_List_ViewerFromToken(t *testing.T) {
	router, mockSvc, _ := newTestRouter(t)

	mockSvc.EXPECT().List(gomock.Any(), 1, 10, uint64(7)).
		Return(&api.PostPage{}, nil)

	w, _ := doJSON(t, router, "GET", "/posts", authToken(t, 7), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_List_BadPagination(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w, resp := doJSON(t, router, "GET", "/posts?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.CodeValidation, resp.Error)
}

func TestHandler_Get(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		router, mockSvc, _ := newTestRouter(t)
		mockSvc.EXPECT().Get(gomock.Any(), uint64(1), uint64(0)).
			Return(&api.Post{ID: 1, Content: "hello"}, nil)

		w, resp := doJSON(t, router, "GET", "/posts/1", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		post := data["post"].(map[string]interface{})
		assert.Equal(t, "hello", post["content"])
	})

	t.Run("invalid id", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		w, resp := doJSON(t, router, "GET", "/posts/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, common.CodeValidation, resp.Error)
	})

	t.Run("not found", func(t *testing.T) {
		router, mockSvc, _ := newTestRouter(t)
		mockSvc.EXPECT().Get(gomock.Any(), uint64(9), uint64(0)).
			Return(nil, common.NewNotFound("Post not found"))

		w, _ := doJSON(t, router, "GET", "/posts/9", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_Create(t *testing.T) {
	token := authToken(t, 10)

	t.Run("requires auth", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		body, contentType := multipartBody(t, "hello", "")
		r := httptest.NewRequest("POST", "/posts", body)
		r.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("without image", func(t *testing.T) {
		router, mockSvc, _ := newTestRouter(t)
		mockSvc.EXPECT().Create(gomock.Any(), uint64(10), "hello", "").
			Return(&api.Post{ID: 1, Content: "hello"}, nil)

		body, contentType := multipartBody(t, "hello", "")
		r := httptest.NewRequest("POST", "/posts", body)
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp api.Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Post created successfully", resp.Message)
	})

	t.Run("with image", func(t *testing.T) {
		router, mockSvc, mockImages := newTestRouter(t)
		mockImages.EXPECT().Save(gomock.Any(), gomock.Any()).Return("abc.jpg", nil)
		mockSvc.EXPECT().Create(gomock.Any(), uint64(10), "hello", "abc.jpg").
			Return(&api.Post{ID: 1, Content: "hello", ImageURL: "/uploads/abc.jpg"}, nil)

		body, contentType := multipartBody(t, "hello", "cat.jpg")
		r := httptest.NewRequest("POST", "/posts", body)
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("oversized image is rejected before the service runs", func(t *testing.T) {
		router, _, mockImages := newTestRouter(t)
		mockImages.EXPECT().Save(gomock.Any(), gomock.Any()).
			Return("", &common.Error{Status: http.StatusRequestEntityTooLarge, Code: common.CodeFileTooLarge, Message: "File too large"})

		body, contentType := multipartBody(t, "hello", "big.jpg")
		r := httptest.NewRequest("POST", "/posts", body)
		r.Header.Set("Content-Type", contentType)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		var resp api.Response
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, common.CodeFileTooLarge, resp.Error)
	})

	t.Run("non-multipart body", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		r := httptest.NewRequest("POST", "/posts", bytes.NewBufferString("{}"))
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	token := authToken(t, 10)

	t.Run("happy path", func(t *testing.T) {
		router, mockSvc, _ := newTestRouter(t)
		mockSvc.EXPECT().Update(gomock.Any(), uint64(1), uint64(10), "new content").
			Return(&api.Post{ID: 1, Content: "new content"}, nil)

		w, resp := doJSON(t, router, "PUT", "/posts/1", token, api.UpdatePostRequest{Content: "new content"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Post updated successfully", resp.Message)
	})

	t.Run("forbidden for non-owner", func(t *testing.T) {
		router, mockSvc, _ := newTestRouter(t)
		mockSvc.EXPECT().Update(gomock.Any(), uint64(1), uint64(10), gomock.Any()).
			Return(nil, common.NewForbidden("You can only update your own posts"))

		w, resp := doJSON(t, router, "PUT", "/posts/1", token, api.UpdatePostRequest{Content: "x"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, common.CodeForbidden, resp.Error)
	})
}

func TestHandler_Delete(t *testing.T) {
	token := authToken(t, 10)

	router, mockSvc, _ := newTestRouter(t)
	mockSvc.EXPECT().Delete(gomock.Any(), uint64(1), uint64(10)).Return(nil)

	w, resp := doJSON(t, router, "DELETE", "/posts/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post deleted successfully", resp.Message)
}

func TestHandler_ToggleLike(t *testing.T) {
	token := authToken(t, 7)

	tests := []struct {
		name        string
		result      *api.LikeResult
		wantMessage string
	}{
		{name: "liked", result: &api.LikeResult{IsLiked: true, LikeCount: 1}, wantMessage: "Post liked"},
		{name: "unliked", result: &api.LikeResult{IsLiked: false, LikeCount: 0}, wantMessage: "Post unliked"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, mockSvc, _ := newTestRouter(t)
			mockSvc.EXPECT().ToggleLike(gomock.Any(), uint64(1), uint64(7)).Return(tc.result, nil)

			w, resp := doJSON(t, router, "POST", "/posts/1/like", token, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.wantMessage, resp.Message)
			data := resp.Data.(map[string]interface{})
			assert.Equal(t, tc.result.IsLiked, data["isLiked"])
		})
	}
}

func TestHandler_Comments(t *testing.T) {
	router, mockSvc, _ := newTestRouter(t)

	mockSvc.EXPECT().Comments(gomock.Any(), uint64(1), 1, 10).
		Return(&api.CommentPage{Comments: []api.Comment{{ID: 1, Content: "first"}}, Pagination: api.Pagination{TotalCount: 1}}, nil)

	w, resp := doJSON(t, router, "GET", "/posts/1/comments", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestHandler_CreateComment(t *testing.T) {
	token := authToken(t, 7)

	router, mockSvc, _ := newTestRouter(t)
	mockSvc.EXPECT().AddComment(gomock.Any(), uint64(1), uint64(7), "nice").
		Return(&api.Comment{ID: 5, Content: "nice"}, nil)

	w, resp := doJSON(t, router, "POST", "/posts/1/comments", token, api.CreateCommentRequest{Content: "nice"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Comment created successfully", resp.Message)
}

func TestHandler_DeleteComment(t *testing.T) {
	token := authToken(t, 7)

	t.Run("happy path", func(t *testing.T) {
		router, mockSvc, _ := newTestRouter(t)
		mockSvc.EXPECT().DeleteComment(gomock.Any(), uint64(5), uint64(7)).Return(nil)

		w, resp := doJSON(t, router, "DELETE", "/posts/comments/5", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Comment deleted successfully", resp.Message)
	})

	t.Run("comments path is not read as a post id", func(t *testing.T) {
		router, mockSvc, _ := newTestRouter(t)
		mockSvc.EXPECT().DeleteComment(gomock.Any(), uint64(123), uint64(7)).Return(nil)

		w, _ := doJSON(t, router, "DELETE", "/posts/comments/123", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid comment id", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		w, resp := doJSON(t, router, "DELETE", "/posts/comments/abc", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, common.CodeValidation, resp.Error)
	})
}
