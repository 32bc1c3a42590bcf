package di

import (
	"gorm.io/gorm"

	"socialnet/internal/config"
	"socialnet/internal/post"
	"socialnet/internal/upload"
	"socialnet/internal/user"
)

// Application bundles everything the API server needs after wiring.
type Application struct {
	Config       *config.Config
	DB           *gorm.DB
	UserHandler  *user.Handler
	PostHandler  *post.Handler
	UploadServer *upload.Server
}

func ProvideDevelopment(cnf *config.Config) bool {
	return cnf.IsDevelopment()
}
