package user

import (
	"context"

	"gorm.io/gorm"

	"socialnet/api"
	"socialnet/internal/dbmysql"
)

type UserRepository interface {
	Create(ctx context.Context, user *dbmysql.User) error
	ByID(ctx context.Context, userID uint64) (*dbmysql.User, error)
	ByEmail(ctx context.Context, email string) (*dbmysql.User, error)
	Update(ctx context.Context, user *dbmysql.User) error
	ListActive(ctx context.Context, offset, limit int) ([]dbmysql.User, error)
	CountActive(ctx context.Context) (int64, error)
	ActiveExists(ctx context.Context, userID uint64) (bool, error)
	ProfileCounts(ctx context.Context, userID uint64) (api.UserCounts, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) ByID(ctx context.Context, userID uint64) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) ListActive(ctx context.Context, offset, limit int) ([]dbmysql.User, error) {
	var users []dbmysql.User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepository) ActiveExists(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmysql.User{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count > 0, err
}

// ProfileCounts computes the per-user aggregates fresh on every request.
func (r *userRepository) ProfileCounts(ctx context.Context, userID uint64) (api.UserCounts, error) {
	var counts api.UserCounts

	if err := r.db.WithContext(ctx).Model(&dbmysql.Post{}).
		Where("author_id = ?", userID).
		Count(&counts.Posts).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).Model(&dbmysql.Follow{}).
		Where("following_id = ?", userID).
		Count(&counts.Followers).Error; err != nil {
		return counts, err
	}
	if err := r.db.WithContext(ctx).Model(&dbmysql.Follow{}).
		Where("follower_id = ?", userID).
		Count(&counts.Following).Error; err != nil {
		return counts, err
	}

	return counts, nil
}
