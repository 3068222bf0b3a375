package services

import (
	"context"
	"errors"

	"github.com/anonto42/movieshare/backend/internal/apperrors"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/repositories"
)

// EngagementService handles likes, bookmarks and notifications.
type EngagementService struct {
	repos *repositories.Repositories
}

func NewEngagementService(repos *repositories.Repositories) *EngagementService {
	return &EngagementService{repos: repos}
}

// notifyOwner records a notification for the post owner. Actors never notify themselves.
func notifyOwner(ctx context.Context, tx *repositories.Repositories, post *models.Post, actorID uint, kind models.NotificationType) error {
	if post.OwnerID == actorID {
		return nil
	}
	notification := &models.Notification{
		UserID: post.OwnerID,
		PostID: post.ID,
		Type:   kind,
	}
	if err := tx.Notifications.CreateNotification(ctx, notification); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ToggleLike flips the like state of (userID, postID) and reports the new state.
func (s *EngagementService) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	var liked bool
	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		post, err := getPost(ctx, tx, postID)
		if err != nil {
			return err
		}

		hasLiked, err := tx.Likes.HasUserLikedPost(ctx, postID, userID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if hasLiked {
			if _, err := tx.Likes.DeleteLike(ctx, postID, userID); err != nil {
				return apperrors.Internal(err)
			}
			liked = false
			return nil
		}

		if err := tx.Likes.CreateLike(ctx, &models.PostLike{UserID: userID, PostID: postID}); err != nil {
			return err
		}
		liked = true
		return notifyOwner(ctx, tx, post, userID, models.NotificationLike)
	})
	if repositories.IsDuplicate(err) {
		// a concurrent request inserted the same like first
		return true, nil
	}
	if err != nil {
		return false, asAppError(err)
	}
	return liked, nil
}

// ToggleBookmark flips the bookmark state of (userID, postID).
func (s *EngagementService) ToggleBookmark(ctx context.Context, postID, userID uint) (bool, error) {
	var bookmarked bool
	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		if _, err := getPost(ctx, tx, postID); err != nil {
			return err
		}

		isBookmarked, err := tx.Bookmarks.IsPostBookmarked(ctx, postID, userID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if isBookmarked {
			if _, err := tx.Bookmarks.DeleteBookmark(ctx, postID, userID); err != nil {
				return apperrors.Internal(err)
			}
			bookmarked = false
			return nil
		}

		if err := tx.Bookmarks.CreateBookmark(ctx, &models.PostBookmark{UserID: userID, PostID: postID}); err != nil {
			return err
		}
		bookmarked = true
		return nil
	})
	if repositories.IsDuplicate(err) {
		return true, nil
	}
	if err != nil {
		return false, asAppError(err)
	}
	return bookmarked, nil
}

func (s *EngagementService) IsBookmarked(ctx context.Context, postID, userID uint) (bool, error) {
	if _, err := getPost(ctx, s.repos, postID); err != nil {
		return false, err
	}
	bookmarked, err := s.repos.Bookmarks.IsPostBookmarked(ctx, postID, userID)
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return bookmarked, nil
}

// ListBookmarks returns bookmarked posts, newest post first.
func (s *EngagementService) ListBookmarks(ctx context.Context, userID uint) ([]models.Post, error) {
	posts, err := s.repos.Posts.ListBookmarkedPosts(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return nonNilPosts(posts), nil
}

func (s *EngagementService) ListNotifications(ctx context.Context, userID uint) ([]models.Notification, error) {
	notifications, err := s.repos.Notifications.GetByRecipientID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *EngagementService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repos.Notifications.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}

// MarkSeen marks a notification as seen. Only its recipient may do so; repeating it is harmless.
func (s *EngagementService) MarkSeen(ctx context.Context, notificationID, actorID uint) (*models.Notification, error) {
	notification, err := s.repos.Notifications.GetByID(ctx, notificationID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("Notification not found")
		}
		return nil, apperrors.Internal(err)
	}
	if notification.UserID != actorID {
		return nil, apperrors.Forbidden("Not authorized to update this notification")
	}

	if !notification.Seen {
		if err := s.repos.Notifications.MarkAsSeen(ctx, notificationID); err != nil {
			return nil, apperrors.Internal(err)
		}
		notification.Seen = true
	}
	return notification, nil
}

// asAppError keeps application errors and wraps anything else as Internal.
func asAppError(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(err)
}
