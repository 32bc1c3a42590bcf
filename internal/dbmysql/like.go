package dbmysql

import "time"

// Like rows are unique per (user_id, post_id); the composite index is what
// keeps concurrent toggles from ever producing two rows.
type Like struct {
	LikeID    uint64    `gorm:"primaryKey;column:like_id;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_user_post,unique" json:"userId"`
	PostID    uint64    `gorm:"column:post_id;not null;index:idx_user_post,unique" json:"postId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	Post Post `gorm:"foreignKey:PostID;references:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
