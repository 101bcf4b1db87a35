package middleware

import (
	"luminaops/config"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	userRepo repositories.UserRepository
	Config   config.Config
	log      logger.Logger
}

func New(config config.Config, repos repositories.Repository) Middleware {
	return Middleware{
		userRepo: repos.User,
		Config:   config,
		log:      logger.New("middleware"),
	}
}
