package dbmysql

import (
	"time"
)

type User struct {
	UserID       uint64    `gorm:"primaryKey;column:user_id;autoIncrement" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	Username     string    `gorm:"column:username;uniqueIndex;size:30;not null" json:"username"`
	FirstName    string    `gorm:"column:first_name;size:50;not null" json:"firstName"`
	LastName     string    `gorm:"column:last_name;size:50;not null" json:"lastName"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Avatar       string    `gorm:"column:avatar;size:500" json:"avatar,omitempty"`
	Bio          string    `gorm:"column:bio;type:text" json:"bio,omitempty"`
	IsActive     bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
