package post

import (
	"context"

	"gorm.io/gorm"

	"socialnet/internal/dbmysql"
)

type PostRepository interface {
	Create(ctx context.Context, post *dbmysql.Post) error
	ByID(ctx context.Context, postID uint64) (*dbmysql.Post, error)
	ListPublished(ctx context.Context, offset, limit int) ([]dbmysql.Post, error)
	CountPublished(ctx context.Context) (int64, error)
	ListPublishedByAuthor(ctx context.Context, authorID uint64, offset, limit int) ([]dbmysql.Post, error)
	CountPublishedByAuthor(ctx context.Context, authorID uint64) (int64, error)
	Update(ctx context.Context, post *dbmysql.Post) error
	Delete(ctx context.Context, postID uint64) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// ByID loads any post regardless of publish state; visibility is the
// service's call (owners still need to update unpublished drafts).
func (r *postRepository) ByID(ctx context.Context, postID uint64) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&post, "post_id = ?", postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListPublished(ctx context.Context, offset, limit int) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Post{}).
		Where("is_published = ?", true).
		Count(&count).Error
	return count, err
}

func (r *postRepository) ListPublishedByAuthor(ctx context.Context, authorID uint64, offset, limit int) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ? AND is_published = ?", authorID, true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountPublishedByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Post{}).
		Where("author_id = ? AND is_published = ?", authorID, true).
		Count(&count).Error
	return count, err
}

func (r *postRepository) Update(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes the post row; comment and like rows go with it via the
// declared ON DELETE CASCADE constraints.
func (r *postRepository) Delete(ctx context.Context, postID uint64) error {
	return r.db.WithContext(ctx).Delete(&dbmysql.Post{}, "post_id = ?", postID).Error
}
