package dbmysql

import "time"

// Follow rows are unique per (follower_id, following_id). Self-follow is
// rejected at the API layer, not here.
type Follow struct {
	FollowID    uint64    `gorm:"primaryKey;column:follow_id;autoIncrement" json:"id"`
	FollowerID  uint64    `gorm:"column:follower_id;not null;index:idx_follower_following,unique" json:"followerId"`
	FollowingID uint64    `gorm:"column:following_id;not null;index:idx_follower_following,unique" json:"followingId"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
