package services

import (
	"context"
	"strings"

	"github.com/anonto42/movieshare/backend/internal/apperrors"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/repositories"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ContentService manages posts and comments.
type ContentService struct {
	repos *repositories.Repositories
}

func NewContentService(repos *repositories.Repositories) *ContentService {
	return &ContentService{repos: repos}
}

// getPost loads a post or fails with NotFound.
func getPost(ctx context.Context, repos *repositories.Repositories, id uint) (*models.Post, error) {
	post, err := repos.Posts.GetPostByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, apperrors.Internal(err)
	}
	return post, nil
}

// NormalizeFilter fills in listing defaults and clamps paging.
func NormalizeFilter(filter models.PostFilter) models.PostFilter {
	if filter.Sort != models.SortOldest {
		filter.Sort = models.SortNewest
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

func (s *ContentService) CreatePost(ctx context.Context, ownerID uint, title, content, visibility string) (*models.Post, error) {
	visibility = strings.TrimSpace(visibility)
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	post := &models.Post{
		Title:      title,
		Content:    content,
		Visibility: visibility,
		OwnerID:    ownerID,
	}
	if err := s.repos.Posts.CreatePost(ctx, post); err != nil {
		return nil, apperrors.Internal(err)
	}
	return post, nil
}

// ListPosts returns the public feed.
func (s *ContentService) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	posts, err := s.repos.Posts.ListPublicPosts(ctx, NormalizeFilter(filter))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return nonNilPosts(posts), nil
}

// ListOwnedPosts returns all posts of ownerID, private ones included.
func (s *ContentService) ListOwnedPosts(ctx context.Context, ownerID uint) ([]models.Post, error) {
	posts, err := s.repos.Posts.ListPostsByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return nonNilPosts(posts), nil
}

func (s *ContentService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return getPost(ctx, s.repos, id)
}

func (s *ContentService) UpdatePost(ctx context.Context, id, actorID uint, title, content string) (*models.Post, error) {
	post, err := getPost(ctx, s.repos, id)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != actorID {
		return nil, apperrors.Forbidden("Not authorized to update this post")
	}

	if err := s.repos.Posts.UpdatePost(ctx, id, title, content); err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, apperrors.Internal(err)
	}
	post.Title = title
	post.Content = content
	return post, nil
}

// DeletePost removes the post and everything hanging off it in one transaction.
func (s *ContentService) DeletePost(ctx context.Context, id, actorID uint) error {
	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		post, err := getPost(ctx, tx, id)
		if err != nil {
			return err
		}
		if post.OwnerID != actorID {
			return apperrors.Forbidden("Not authorized to delete this post")
		}

		if err := tx.Likes.DeleteLikesByPostID(ctx, id); err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Bookmarks.DeleteBookmarksByPostID(ctx, id); err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Comments.DeleteCommentsByPostID(ctx, id); err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Notifications.DeleteByPostID(ctx, id); err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Posts.DeletePost(ctx, id); err != nil {
			if repositories.IsNotFound(err) {
				return apperrors.NotFound("Post not found")
			}
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}
	return nil
}

// AddComment stores a comment and notifies the post owner unless they wrote it.
func (s *ContentService) AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	var comment *models.Comment
	err := s.repos.Transaction(ctx, func(tx *repositories.Repositories) error {
		post, err := getPost(ctx, tx, postID)
		if err != nil {
			return err
		}

		comment = &models.Comment{
			Content: content,
			UserID:  authorID,
			PostID:  postID,
		}
		if err := tx.Comments.CreateComment(ctx, comment); err != nil {
			return apperrors.Internal(err)
		}
		return notifyOwner(ctx, tx, post, authorID, models.NotificationComment)
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return comment, nil
}

// ListComments returns a post's comments in chronological order.
func (s *ContentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := getPost(ctx, s.repos, postID); err != nil {
		return nil, err
	}

	comments, err := s.repos.Comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

func nonNilPosts(posts []models.Post) []models.Post {
	if posts == nil {
		return []models.Post{}
	}
	return posts
}
