package post

import (
	"context"

	"gorm.io/gorm"

	"socialnet/internal/dbmysql"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *dbmysql.Comment) error
	ByID(ctx context.Context, commentID uint64) (*dbmysql.Comment, error)
	ListByPost(ctx context.Context, postID uint64, offset, limit int) ([]dbmysql.Comment, error)
	CountByPost(ctx context.Context, postID uint64) (int64, error)
	CountsByPost(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
	Delete(ctx context.Context, commentID uint64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ByID(ctx context.Context, commentID uint64) (*dbmysql.Comment, error) {
	var comment dbmysql.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&comment, "comment_id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint64, offset, limit int) ([]dbmysql.Comment, error) {
	var comments []dbmysql.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// CountsByPost returns per-post comment counts for one page of posts in a
// single grouped query.
func (r *commentRepository) CountsByPost(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	return groupedCounts(ctx, r.db, &dbmysql.Comment{}, postIDs)
}

func (r *commentRepository) Delete(ctx context.Context, commentID uint64) error {
	return r.db.WithContext(ctx).Delete(&dbmysql.Comment{}, "comment_id = ?", commentID).Error
}

type postCountRow struct {
	PostID uint64
	N      int64
}

func groupedCounts(ctx context.Context, db *gorm.DB, model interface{}, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []postCountRow
	err := db.WithContext(ctx).Model(model).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	return counts, nil
}
