// Package api holds the JSON contract shared by the REST handlers and the
// Go client. Field names follow the wire format consumed by the web client.
package api

import "time"

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Error   string       `json:"error,omitempty"` // machine-readable code on failures
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Author is the trimmed user block embedded in posts and comments.
type Author struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar,omitempty"`
}

type UserCounts struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

type User struct {
	ID          uint64      `json:"id"`
	Email       string      `json:"email,omitempty"` // only present on the viewer's own profile
	Username    string      `json:"username"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Avatar      string      `json:"avatar,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	IsFollowing *bool       `json:"isFollowing,omitempty"`
	Counts      *UserCounts `json:"_count,omitempty"`
}

type PostCounts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

type Post struct {
	ID          uint64     `json:"id"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Author      Author     `json:"author"`
	IsLiked     bool       `json:"isLiked"`
	Counts      PostCounts `json:"_count"`
}

type Comment struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      Author    `json:"user"`
}

// Pagination is the page metadata block returned by every list endpoint.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// Request payloads.

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
}

type UpdatePostRequest struct {
	Content string `json:"content"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Data payloads.

type AuthData struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UserData struct {
	User *User `json:"user"`
}

type PostData struct {
	Post *Post `json:"post"`
}

type CommentData struct {
	Comment *Comment `json:"comment"`
}

type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type UserPage struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

type CommentPage struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

type LikeResult struct {
	IsLiked   bool  `json:"isLiked"`
	LikeCount int64 `json:"likeCount"`
}

type FollowResult struct {
	IsFollowing   bool  `json:"isFollowing"`
	FollowerCount int64 `json:"followerCount"`
}
