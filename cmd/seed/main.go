// Seeds the database with demo users, posts, comments, likes and a follow
// so a fresh install has something to show.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"socialnet/internal/common"
	"socialnet/internal/config"
	"socialnet/internal/dbmysql"
	"socialnet/internal/post"
	"socialnet/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cnf := config.Load()
	db, err := dbmysql.NewMySQL(cnf)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	ctx := context.Background()
	users := user.NewUserRepository(db)
	follows := user.NewFollowRepository(db)
	posts := post.NewPostRepository(db)
	comments := post.NewCommentRepository(db)
	likes := post.NewLikeRepository(db)

	hashed, err := common.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	john := &dbmysql.User{
		Email:        "john@example.com",
		Username:     "johndoe",
		FirstName:    "John",
		LastName:     "Doe",
		Bio:          "Software developer passionate about building great apps.",
		PasswordHash: hashed,
		IsActive:     true,
	}
	jane := &dbmysql.User{
		Email:        "jane@example.com",
		Username:     "janesmith",
		FirstName:    "Jane",
		LastName:     "Smith",
		Bio:          "Designer and creative thinker.",
		PasswordHash: hashed,
		IsActive:     true,
	}
	for _, u := range []*dbmysql.User{john, jane} {
		if err := users.Create(ctx, u); err != nil {
			if common.IsDuplicate(err) {
				log.Printf("user %s already seeded, skipping", u.Username)
				continue
			}
			log.Fatalf("Failed to seed user %s: %v", u.Username, err)
		}
	}
	if john.UserID == 0 || jane.UserID == 0 {
		log.Println("Demo users already present, nothing to do")
		return
	}

	post1 := &dbmysql.Post{
		Content:     "Welcome to our new social media platform! Excited to share and connect with everyone.",
		AuthorID:    john.UserID,
		IsPublished: true,
	}
	post2 := &dbmysql.Post{
		Content:     "Just finished working on a new design project. Love how creativity flows when you're passionate about what you do!",
		AuthorID:    jane.UserID,
		IsPublished: true,
	}
	for _, p := range []*dbmysql.Post{post1, post2} {
		if err := posts.Create(ctx, p); err != nil {
			log.Fatalf("Failed to seed post: %v", err)
		}
	}

	demoComments := []*dbmysql.Comment{
		{Content: "Great to have you here! Looking forward to your posts.", PostID: post1.PostID, UserID: jane.UserID},
		{Content: "Your designs are always inspiring! Can't wait to see what you create next.", PostID: post2.PostID, UserID: john.UserID},
	}
	for _, c := range demoComments {
		if err := comments.Create(ctx, c); err != nil {
			log.Fatalf("Failed to seed comment: %v", err)
		}
	}

	demoLikes := []*dbmysql.Like{
		{UserID: jane.UserID, PostID: post1.PostID},
		{UserID: john.UserID, PostID: post2.PostID},
	}
	for _, l := range demoLikes {
		if err := likes.Create(ctx, l); err != nil && !common.IsDuplicate(err) {
			log.Fatalf("Failed to seed like: %v", err)
		}
	}

	if err := follows.Create(ctx, &dbmysql.Follow{FollowerID: john.UserID, FollowingID: jane.UserID}); err != nil && !common.IsDuplicate(err) {
		log.Fatalf("Failed to seed follow: %v", err)
	}

	log.Println("Database seeded successfully")
	log.Println("Demo users: john@example.com / jane@example.com (password: password123)")
}
