package post

import (
	"context"

	"gorm.io/gorm"

	"socialnet/internal/dbmysql"
)

type LikeRepository interface {
	Exists(ctx context.Context, userID, postID uint64) (bool, error)
	Create(ctx context.Context, like *dbmysql.Like) error
	Delete(ctx context.Context, userID, postID uint64) error
	CountByPost(ctx context.Context, postID uint64) (int64, error)
	CountsByPost(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
	LikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) Create(ctx context.Context, like *dbmysql.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&dbmysql.Like{}).Error
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountsByPost(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	return groupedCounts(ctx, r.db, &dbmysql.Like{}, postIDs)
}

// LikedPostIDs returns which of the given posts the viewer has liked, without
// materializing anyone else's likes.
func (r *likeRepository) LikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uint64
	err := r.db.WithContext(ctx).Model(&dbmysql.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
