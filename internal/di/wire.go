//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"socialnet/internal/config"
	"socialnet/internal/post"
	"socialnet/internal/upload"
	"socialnet/internal/user"
)

// This is just a declaration — wire generates the real body
func InitializeAPI(db *gorm.DB, cnf *config.Config) (*Application, error) {
	wire.Build(
		user.NewUserRepository,
		user.NewFollowRepository,
		user.NewUserService,
		user.NewHandler,
		post.NewPostRepository,
		post.NewCommentRepository,
		post.NewLikeRepository,
		post.NewPostService,
		post.NewHandler,
		upload.NewStorage,
		upload.NewServer,
		ProvideDevelopment,
		wire.Bind(new(post.ImageStore), new(*upload.Storage)),
		wire.Bind(new(post.UserDirectory), new(user.UserRepository)),
		wire.Bind(new(user.PostLister), new(post.PostService)),
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
