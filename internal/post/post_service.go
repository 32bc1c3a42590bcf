package post

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"socialnet/api"
	"socialnet/internal/common"
	"socialnet/internal/dbmysql"
	"socialnet/internal/upload"
)

// ImageStore is the slice of the upload layer the post flow needs.
// *upload.Storage satisfies it.
type ImageStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
	URL(name string) string
	Remove(name string) error
}

// UserDirectory answers whether a target user exists and is active.
// The user repository satisfies it.
type UserDirectory interface {
	ActiveExists(ctx context.Context, userID uint64) (bool, error)
}

type PostService interface {
	List(ctx context.Context, page, limit int, viewerID uint64) (*api.PostPage, error)
	Get(ctx context.Context, postID, viewerID uint64) (*api.Post, error)
	Create(ctx context.Context, authorID uint64, content, imageFilename string) (*api.Post, error)
	Update(ctx context.Context, postID, actorID uint64, content string) (*api.Post, error)
	Delete(ctx context.Context, postID, actorID uint64) error
	ToggleLike(ctx context.Context, postID, viewerID uint64) (*api.LikeResult, error)
	Comments(ctx context.Context, postID uint64, page, limit int) (*api.CommentPage, error)
	AddComment(ctx context.Context, postID, authorID uint64, content string) (*api.Comment, error)
	DeleteComment(ctx context.Context, commentID, actorID uint64) error
	ListByAuthor(ctx context.Context, authorID uint64, page, limit int, viewerID uint64) (*api.PostPage, error)
}

type postService struct {
	postRepo    PostRepository
	commentRepo CommentRepository
	likeRepo    LikeRepository
	users       UserDirectory
	images      ImageStore
}

func NewPostService(postRepo PostRepository, commentRepo CommentRepository, likeRepo LikeRepository, users UserDirectory, images ImageStore) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		users:       users,
		images:      images,
	}
}

func (s *postService) List(ctx context.Context, page, limit int, viewerID uint64) (*api.PostPage, error) {
	total, err := s.postRepo.CountPublished(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListPublished(ctx, common.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	shaped, err := s.shapePage(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}

	return &api.PostPage{
		Posts:      shaped,
		Pagination: common.NewPagination(page, limit, total),
	}, nil
}

func (s *postService) Get(ctx context.Context, postID, viewerID uint64) (*api.Post, error) {
	p, err := s.postRepo.ByID(ctx, postID)
	if err != nil {
		return nil, notFoundAsPost(err)
	}
	// unpublished posts are hidden from everyone, the author included
	if !p.IsPublished {
		return nil, common.NewNotFound("Post not found")
	}

	return s.shapeOne(ctx, p, viewerID)
}

// Create persists the post row. The image file has already been written by
// the handler; if anything fails past that point the file is removed so no
// orphan is left behind.
func (s *postService) Create(ctx context.Context, authorID uint64, content, imageFilename string) (*api.Post, error) {
	cleanup := func() {
		if imageFilename != "" {
			if err := s.images.Remove(imageFilename); err != nil {
				log.Printf("failed to remove uploaded image %s: %v", imageFilename, err)
			}
		}
	}

	if fe := common.ValidatePostContent(content); fe != nil {
		cleanup()
		return nil, common.NewValidationError(*fe)
	}

	p := &dbmysql.Post{
		Content:     strings.TrimSpace(content),
		AuthorID:    authorID,
		IsPublished: true,
	}
	if imageFilename != "" {
		p.ImageURL = s.images.URL(imageFilename)
	}

	if err := s.postRepo.Create(ctx, p); err != nil {
		cleanup()
		return nil, err
	}

	created, err := s.postRepo.ByID(ctx, p.PostID)
	if err != nil {
		return nil, err
	}

	out := toPost(created, 0, 0, false)
	return &out, nil
}

func (s *postService) Update(ctx context.Context, postID, actorID uint64, content string) (*api.Post, error) {
	p, err := s.postRepo.ByID(ctx, postID)
	if err != nil {
		return nil, notFoundAsPost(err)
	}
	if p.AuthorID != actorID {
		return nil, common.NewForbidden("You can only update your own posts")
	}

	if fe := common.ValidatePostContent(content); fe != nil {
		return nil, common.NewValidationError(*fe)
	}

	p.Content = strings.TrimSpace(content)
	if err := s.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.shapeOne(ctx, p, actorID)
}

// Delete removes the row first, then the stored image best-effort: a failed
// file removal is logged, never surfaced.
func (s *postService) Delete(ctx context.Context, postID, actorID uint64) error {
	p, err := s.postRepo.ByID(ctx, postID)
	if err != nil {
		return notFoundAsPost(err)
	}
	if p.AuthorID != actorID {
		return common.NewForbidden("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if p.ImageURL != "" {
		name := upload.FilenameFromURL(p.ImageURL)
		if err := s.images.Remove(name); err != nil {
			log.Printf("failed to remove image %s for deleted post %d: %v", name, postID, err)
		}
	}

	return nil
}

func (s *postService) ToggleLike(ctx context.Context, postID, viewerID uint64) (*api.LikeResult, error) {
	if _, err := s.postRepo.ByID(ctx, postID); err != nil {
		return nil, notFoundAsPost(err)
	}

	exists, err := s.likeRepo.Exists(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	var isLiked bool
	if exists {
		if err := s.likeRepo.Delete(ctx, viewerID, postID); err != nil {
			return nil, err
		}
		isLiked = false
	} else {
		err := s.likeRepo.Create(ctx, &dbmysql.Like{UserID: viewerID, PostID: postID})
		switch {
		case err == nil:
			isLiked = true
		case common.IsDuplicate(err):
			// concurrent toggle already inserted the row
			isLiked = true
		default:
			return nil, err
		}
	}

	// re-queried, not incremented, so the count cannot drift
	count, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &api.LikeResult{IsLiked: isLiked, LikeCount: count}, nil
}

func (s *postService) Comments(ctx context.Context, postID uint64, page, limit int) (*api.CommentPage, error) {
	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, common.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	out := make([]api.Comment, 0, len(comments))
	for i := range comments {
		out = append(out, toComment(&comments[i]))
	}

	return &api.CommentPage{
		Comments:   out,
		Pagination: common.NewPagination(page, limit, total),
	}, nil
}

func (s *postService) AddComment(ctx context.Context, postID, authorID uint64, content string) (*api.Comment, error) {
	if fe := common.ValidateCommentContent(content); fe != nil {
		return nil, common.NewValidationError(*fe)
	}

	if _, err := s.postRepo.ByID(ctx, postID); err != nil {
		return nil, notFoundAsPost(err)
	}

	c := &dbmysql.Comment{
		Content: strings.TrimSpace(content),
		PostID:  postID,
		UserID:  authorID,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.ByID(ctx, c.CommentID)
	if err != nil {
		return nil, err
	}

	out := toComment(created)
	return &out, nil
}

func (s *postService) DeleteComment(ctx context.Context, commentID, actorID uint64) error {
	c, err := s.commentRepo.ByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFound("Comment not found")
		}
		return err
	}
	if c.UserID != actorID {
		return common.NewForbidden("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func (s *postService) ListByAuthor(ctx context.Context, authorID uint64, page, limit int, viewerID uint64) (*api.PostPage, error) {
	exists, err := s.users.ActiveExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.NewNotFound("User not found")
	}

	total, err := s.postRepo.CountPublishedByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListPublishedByAuthor(ctx, authorID, common.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	shaped, err := s.shapePage(ctx, posts, viewerID)
	if err != nil {
		return nil, err
	}

	return &api.PostPage{
		Posts:      shaped,
		Pagination: common.NewPagination(page, limit, total),
	}, nil
}

// shapePage attaches aggregate counts and the viewer's liked flags to one
// page of posts.
func (s *postService) shapePage(ctx context.Context, posts []dbmysql.Post, viewerID uint64) ([]api.Post, error) {
	ids := make([]uint64, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].PostID)
	}

	likeCounts, err := s.likeRepo.CountsByPost(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.commentRepo.CountsByPost(ctx, ids)
	if err != nil {
		return nil, err
	}

	liked := map[uint64]bool{}
	if viewerID != 0 {
		liked, err = s.likeRepo.LikedPostIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]api.Post, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		out = append(out, toPost(p, likeCounts[p.PostID], commentCounts[p.PostID], liked[p.PostID]))
	}
	return out, nil
}

func (s *postService) shapeOne(ctx context.Context, p *dbmysql.Post, viewerID uint64) (*api.Post, error) {
	likes, err := s.likeRepo.CountByPost(ctx, p.PostID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.CountByPost(ctx, p.PostID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	if viewerID != 0 {
		isLiked, err = s.likeRepo.Exists(ctx, viewerID, p.PostID)
		if err != nil {
			return nil, err
		}
	}

	out := toPost(p, likes, comments, isLiked)
	return &out, nil
}

func toPost(p *dbmysql.Post, likes, comments int64, isLiked bool) api.Post {
	return api.Post{
		ID:          p.PostID,
		Content:     p.Content,
		ImageURL:    p.ImageURL,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Author:      toAuthor(&p.Author),
		IsLiked:     isLiked,
		Counts:      api.PostCounts{Likes: likes, Comments: comments},
	}
}

func toComment(c *dbmysql.Comment) api.Comment {
	return api.Comment{
		ID:        c.CommentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      toAuthor(&c.User),
	}
}

func toAuthor(u *dbmysql.User) api.Author {
	return api.Author{
		ID:        u.UserID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}

func notFoundAsPost(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewNotFound("Post not found")
	}
	return err
}
