package services

import (
	"context"

	"github.com/anonto42/movieshare/backend/internal/apperrors"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/repositories"
	"go.uber.org/zap"
)

// IdentityService owns user records and profile changes.
type IdentityService struct {
	logger *zap.Logger
	repos  *repositories.Repositories
	cache  repositories.UserCache
}

func NewIdentityService(logger *zap.Logger, repos *repositories.Repositories, cache repositories.UserCache) *IdentityService {
	if cache == nil {
		cache = repositories.NoopUserCache{}
	}
	return &IdentityService{
		logger: logger,
		repos:  repos,
		cache:  cache,
	}
}

// Create registers a user. Duplicate email or username fails with Conflict.
func (s *IdentityService) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	if _, err := s.repos.Users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("Email already registered")
	} else if !repositories.IsNotFound(err) {
		return nil, apperrors.Internal(err)
	}

	if _, err := s.repos.Users.GetUserByUsername(ctx, username); err == nil {
		return nil, apperrors.Conflict("Username already taken")
	} else if !repositories.IsNotFound(err) {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: passwordHash,
	}
	if err := s.repos.Users.CreateUser(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if repositories.IsDuplicate(err) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// FindByEmail returns the user registered under email.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	cached, err := s.cache.Get(ctx, email)
	if err != nil {
		s.logger.Warn("user cache read failed", zap.String("email", email), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	user, err := s.repos.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn("user cache write failed", zap.String("email", email), zap.Error(err))
	}
	return user, nil
}

// GetByID returns the user with the given id.
func (s *IdentityService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repos.Users.GetUserByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// UpdateProfile applies only the fields present in patch.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID uint, patch models.ProfilePatch) (*models.User, error) {
	if !patch.Empty() {
		if err := s.repos.Users.UpdateProfile(ctx, userID, patch.Columns()); err != nil {
			if repositories.IsNotFound(err) {
				return nil, apperrors.NotFound("User not found")
			}
			return nil, apperrors.Internal(err)
		}
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.evict(ctx, user.Email)
	return user, nil
}

// SetAvatar records the public URL of the user's avatar.
func (s *IdentityService) SetAvatar(ctx context.Context, userID uint, url string) (*models.User, error) {
	if err := s.repos.Users.SetAvatar(ctx, userID, url); err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.evict(ctx, user.Email)
	return user, nil
}

func (s *IdentityService) evict(ctx context.Context, email string) {
	if err := s.cache.Delete(ctx, email); err != nil {
		s.logger.Warn("user cache eviction failed", zap.String("email", email), zap.Error(err))
	}
}
