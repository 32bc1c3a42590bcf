package post

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialnet/internal/common"
	"socialnet/internal/dbmysql"
)

type serviceMocks struct {
	postRepo    *MockPostRepository
	commentRepo *MockCommentRepository
	likeRepo    *MockLikeRepository
	users       *MockUserDirectory
	images      *MockImageStore
}

func newServiceWithMocks(t *testing.T) (PostService, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := serviceMocks{
		postRepo:    NewMockPostRepository(ctrl),
		commentRepo: NewMockCommentRepository(ctrl),
		likeRepo:    NewMockLikeRepository(ctrl),
		users:       NewMockUserDirectory(ctrl),
		images:      NewMockImageStore(ctrl),
	}
	svc := NewPostService(m.postRepo, m.commentRepo, m.likeRepo, m.users, m.images)
	return svc, m
}

func storedPost(id, authorID uint64) *dbmysql.Post {
	return &dbmysql.Post{
		PostID:      id,
		Content:     "hello",
		AuthorID:    authorID,
		IsPublished: true,
		CreatedAt:   time.Now(),
		Author:      dbmysql.User{UserID: authorID, Username: "alice"},
	}
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	posts := []dbmysql.Post{*storedPost(1, 10), *storedPost(2, 10)}

	t.Run("authenticated viewer gets liked flags", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.postRepo.EXPECT().CountPublished(ctx).Return(int64(25), nil)
		m.postRepo.EXPECT().ListPublished(ctx, 10, 10).Return(posts, nil)
		m.likeRepo.EXPECT().CountsByPost(ctx, []uint64{1, 2}).Return(map[uint64]int64{1: 3}, nil)
		m.commentRepo.EXPECT().CountsByPost(ctx, []uint64{1, 2}).Return(map[uint64]int64{2: 5}, nil)
		m.likeRepo.EXPECT().LikedPostIDs(ctx, uint64(7), []uint64{1, 2}).Return(map[uint64]bool{1: true}, nil)

		page, err := svc.List(ctx, 2, 10, 7)
		require.NoError(t, err)
		require.Len(t, page.Posts, 2)
		assert.True(t, page.Posts[0].IsLiked)
		assert.Equal(t, int64(3), page.Posts[0].Counts.Likes)
		assert.False(t, page.Posts[1].IsLiked)
		assert.Equal(t, int64(5), page.Posts[1].Counts.Comments)
		assert.Equal(t, 3, page.Pagination.TotalPages)
	})

	t.Run("anonymous viewer skips the liked lookup", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.postRepo.EXPECT().CountPublished(ctx).Return(int64(2), nil)
		m.postRepo.EXPECT().ListPublished(ctx, 0, 10).Return(posts, nil)
		m.likeRepo.EXPECT().CountsByPost(ctx, []uint64{1, 2}).Return(map[uint64]int64{}, nil)
		m.commentRepo.EXPECT().CountsByPost(ctx, []uint64{1, 2}).Return(map[uint64]int64{}, nil)

		page, err := svc.List(ctx, 1, 10, 0)
		require.NoError(t, err)
		assert.False(t, page.Posts[0].IsLiked)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(storedPost(1, 10), nil)
		m.likeRepo.EXPECT().CountByPost(ctx, uint64(1)).Return(int64(4), nil)
		m.commentRepo.EXPECT().CountByPost(ctx, uint64(1)).Return(int64(2), nil)
		m.likeRepo.EXPECT().Exists(ctx, uint64(7), uint64(1)).Return(true, nil)

		p, err := svc.Get(ctx, 1, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), p.ID)
		assert.True(t, p.IsLiked)
		assert.Equal(t, "alice", p.Author.Username)
	})

	t.Run("unpublished is hidden from the author too", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		draft := storedPost(1, 10)
		draft.IsPublished = false
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(draft, nil)

		_, err := svc.Get(ctx, 1, 10)
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Post not found", apiErr.Message)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Get(ctx, 9, 0)
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("without image", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.postRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *dbmysql.Post) error {
				assert.Equal(t, "hello", p.Content)
				assert.True(t, p.IsPublished)
				assert.Empty(t, p.ImageURL)
				p.PostID = 1
				return nil
			})
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(storedPost(1, 10), nil)

		p, err := svc.Create(ctx, 10, " hello ", "")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), p.ID)
		assert.Equal(t, int64(0), p.Counts.Likes)
	})

	t.Run("with image", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.images.EXPECT().URL("abc.jpg").Return("/uploads/abc.jpg")
		m.postRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p *dbmysql.Post) error {
				assert.Equal(t, "/uploads/abc.jpg", p.ImageURL)
				p.PostID = 2
				return nil
			})
		m.postRepo.EXPECT().ByID(ctx, uint64(2)).Return(storedPost(2, 10), nil)

		_, err := svc.Create(ctx, 10, "hello", "abc.jpg")
		require.NoError(t, err)
	})

	t.Run("validation failure removes the stored image", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.images.EXPECT().Remove("abc.jpg").Return(nil)

		_, err := svc.Create(ctx, 10, "   ", "abc.jpg")
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, common.CodeValidation, apiErr.Code)
	})

	t.Run("row insert failure removes the stored image", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)

		m.images.EXPECT().URL("abc.jpg").Return("/uploads/abc.jpg")
		m.postRepo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))
		m.images.EXPECT().Remove("abc.jpg").Return(nil)

		_, err := svc.Create(ctx, 10, "hello", "abc.jpg")
		require.Error(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		svc, _ := newServiceWithMocks(t)

		_, err := svc.Create(ctx, 10, strings.Repeat("a", 2001), "")
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, common.CodeValidation, apiErr.Code)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can update", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		p := storedPost(1, 10)
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(p, nil)
		m.postRepo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, updated *dbmysql.Post) error {
				assert.Equal(t, "new content", updated.Content)
				return nil
			})
		m.likeRepo.EXPECT().CountByPost(ctx, uint64(1)).Return(int64(0), nil)
		m.commentRepo.EXPECT().CountByPost(ctx, uint64(1)).Return(int64(0), nil)
		m.likeRepo.EXPECT().Exists(ctx, uint64(10), uint64(1)).Return(false, nil)

		out, err := svc.Update(ctx, 1, 10, "new content")
		require.NoError(t, err)
		assert.Equal(t, "new content", out.Content)
	})

	t.Run("non-owner gets forbidden", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(storedPost(1, 10), nil)

		_, err := svc.Update(ctx, 1, 99, "new content")
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, "You can only update your own posts", apiErr.Message)
	})

	t.Run("ownership is checked before validation", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(storedPost(1, 10), nil)

		_, err := svc.Update(ctx, 1, 99, "")
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner delete removes the image too", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		p := storedPost(1, 10)
		p.ImageURL = "/uploads/abc.jpg"
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(p, nil)
		m.postRepo.EXPECT().Delete(ctx, uint64(1)).Return(nil)
		m.images.EXPECT().Remove("abc.jpg").Return(nil)

		require.NoError(t, svc.Delete(ctx, 1, 10))
	})

	t.Run("image removal failure is swallowed", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		p := storedPost(1, 10)
		p.ImageURL = "/uploads/abc.jpg"
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(p, nil)
		m.postRepo.EXPECT().Delete(ctx, uint64(1)).Return(nil)
		m.images.EXPECT().Remove("abc.jpg").Return(errors.New("disk error"))

		require.NoError(t, svc.Delete(ctx, 1, 10))
	})

	t.Run("non-owner gets forbidden", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(storedPost(1, 10), nil)

		err := svc.Delete(ctx, 1, 99)
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, "You can only delete your own posts", apiErr.Message)
	})
}

func TestService_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("like then unlike alternates", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(storedPost(1, 10), nil).Times(2)

		m.likeRepo.EXPECT().Exists(ctx, uint64(7), uint64(1)).Return(false, nil)
		m.likeRepo.EXPECT().Create(ctx, &dbmysql.Like{UserID: 7, PostID: 1}).Return(nil)
		m.likeRepo.EXPECT().CountByPost(ctx, uint64(1)).Return(int64(1), nil)

		result, err := svc.ToggleLike(ctx, 1, 7)
		require.NoError(t, err)
		assert.True(t, result.IsLiked)
		assert.Equal(t, int64(1), result.LikeCount)

		m.likeRepo.EXPECT().Exists(ctx, uint64(7), uint64(1)).Return(true, nil)
		m.likeRepo.EXPECT().Delete(ctx, uint64(7), uint64(1)).Return(nil)
		m.likeRepo.EXPECT().CountByPost(ctx, uint64(1)).Return(int64(0), nil)

		result, err = svc.ToggleLike(ctx, 1, 7)
		require.NoError(t, err)
		assert.False(t, result.IsLiked)
		assert.Equal(t, int64(0), result.LikeCount)
	})

	t.Run("lost insert race still reads as liked", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(storedPost(1, 10), nil)
		m.likeRepo.EXPECT().Exists(ctx, uint64(7), uint64(1)).Return(false, nil)
		m.likeRepo.EXPECT().Create(ctx, gomock.Any()).Return(gorm.ErrDuplicatedKey)
		m.likeRepo.EXPECT().CountByPost(ctx, uint64(1)).Return(int64(1), nil)

		result, err := svc.ToggleLike(ctx, 1, 7)
		require.NoError(t, err)
		assert.True(t, result.IsLiked)
	})

	t.Run("post not found", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ToggleLike(ctx, 9, 7)
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}

func TestService_Comments(t *testing.T) {
	ctx := context.Background()
	svc, m := newServiceWithMocks(t)

	comments := []dbmysql.Comment{
		{CommentID: 1, Content: "first", PostID: 1, User: dbmysql.User{UserID: 2, Username: "bob"}},
	}
	m.commentRepo.EXPECT().CountByPost(ctx, uint64(1)).Return(int64(1), nil)
	m.commentRepo.EXPECT().ListByPost(ctx, uint64(1), 0, 10).Return(comments, nil)

	page, err := svc.Comments(ctx, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, "bob", page.Comments[0].User.Username)
	assert.Equal(t, int64(1), page.Pagination.TotalCount)
}

func TestService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(1)).Return(storedPost(1, 10), nil)
		m.commentRepo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *dbmysql.Comment) error {
				assert.Equal(t, "nice", c.Content)
				assert.Equal(t, uint64(1), c.PostID)
				assert.Equal(t, uint64(7), c.UserID)
				c.CommentID = 5
				return nil
			})
		m.commentRepo.EXPECT().ByID(ctx, uint64(5)).
			Return(&dbmysql.Comment{CommentID: 5, Content: "nice", User: dbmysql.User{UserID: 7, Username: "carol"}}, nil)

		c, err := svc.AddComment(ctx, 1, 7, " nice ")
		require.NoError(t, err)
		assert.Equal(t, uint64(5), c.ID)
		assert.Equal(t, "carol", c.User.Username)
	})

	t.Run("empty content", func(t *testing.T) {
		svc, _ := newServiceWithMocks(t)

		_, err := svc.AddComment(ctx, 1, 7, "  ")
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, common.CodeValidation, apiErr.Code)
	})

	t.Run("post not found", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.postRepo.EXPECT().ByID(ctx, uint64(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.AddComment(ctx, 9, 7, "nice")
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}

func TestService_DeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.commentRepo.EXPECT().ByID(ctx, uint64(5)).Return(&dbmysql.Comment{CommentID: 5, UserID: 7}, nil)
		m.commentRepo.EXPECT().Delete(ctx, uint64(5)).Return(nil)

		require.NoError(t, svc.DeleteComment(ctx, 5, 7))
	})

	t.Run("non-owner gets forbidden", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.commentRepo.EXPECT().ByID(ctx, uint64(5)).Return(&dbmysql.Comment{CommentID: 5, UserID: 7}, nil)

		err := svc.DeleteComment(ctx, 5, 99)
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, "You can only delete your own comments", apiErr.Message)
	})

	t.Run("missing comment", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.commentRepo.EXPECT().ByID(ctx, uint64(5)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteComment(ctx, 5, 7)
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Comment not found", apiErr.Message)
	})
}

func TestService_ListByAuthor(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown author", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		m.users.EXPECT().ActiveExists(ctx, uint64(99)).Return(false, nil)

		_, err := svc.ListByAuthor(ctx, 99, 1, 10, 0)
		var apiErr *common.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "User not found", apiErr.Message)
	})

	t.Run("happy path", func(t *testing.T) {
		svc, m := newServiceWithMocks(t)
		posts := []dbmysql.Post{*storedPost(1, 10)}

		m.users.EXPECT().ActiveExists(ctx, uint64(10)).Return(true, nil)
		m.postRepo.EXPECT().CountPublishedByAuthor(ctx, uint64(10)).Return(int64(1), nil)
		m.postRepo.EXPECT().ListPublishedByAuthor(ctx, uint64(10), 0, 10).Return(posts, nil)
		m.likeRepo.EXPECT().CountsByPost(ctx, []uint64{1}).Return(map[uint64]int64{}, nil)
		m.commentRepo.EXPECT().CountsByPost(ctx, []uint64{1}).Return(map[uint64]int64{}, nil)

		page, err := svc.ListByAuthor(ctx, 10, 1, 10, 0)
		require.NoError(t, err)
		require.Len(t, page.Posts, 1)
	})
}
