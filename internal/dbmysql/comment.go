package dbmysql

import (
	"time"
)

type Comment struct {
	CommentID uint64    `gorm:"primaryKey;column:comment_id;autoIncrement" json:"id"`
	Content   string    `gorm:"column:content;size:500;not null" json:"content"`
	PostID    uint64    `gorm:"column:post_id;not null;index" json:"postId"`
	UserID    uint64    `gorm:"column:user_id;not null;index" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Post Post `gorm:"foreignKey:PostID;references:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID;references:UserID" json:"user"`
}
