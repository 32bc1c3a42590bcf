package dbmysql

import (
	"time"
)

type Post struct {
	PostID      uint64    `gorm:"primaryKey;column:post_id;autoIncrement" json:"id"`
	Content     string    `gorm:"column:content;size:2000;not null" json:"content"`
	ImageURL    string    `gorm:"column:image_url;size:500" json:"imageUrl,omitempty"`
	IsPublished bool      `gorm:"column:is_published;default:true" json:"isPublished"`
	AuthorID    uint64    `gorm:"column:author_id;not null;index" json:"authorId"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Author User `gorm:"foreignKey:AuthorID;references:UserID" json:"author"`
}
