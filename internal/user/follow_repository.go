package user

import (
	"context"

	"gorm.io/gorm"

	"socialnet/internal/dbmysql"
)

type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID uint64) (bool, error)
	Create(ctx context.Context, follow *dbmysql.Follow) error
	Delete(ctx context.Context, followerID, followingID uint64) error
	CountFollowers(ctx context.Context, userID uint64) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) Create(ctx context.Context, follow *dbmysql.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&dbmysql.Follow{}).Error
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}
