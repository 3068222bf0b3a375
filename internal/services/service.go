package services

import (
	"github.com/anonto42/movieshare/backend/internal/repositories"
	"go.uber.org/zap"
)

// Services groups the identity, content and engagement services.
type Services struct {
	Identity   *IdentityService
	Content    *ContentService
	Engagement *EngagementService
}

func New(logger *zap.Logger, repos *repositories.Repositories, cache repositories.UserCache) *Services {
	return &Services{
		Identity:   NewIdentityService(logger, repos, cache),
		Content:    NewContentService(repos),
		Engagement: NewEngagementService(repos),
	}
}
