package repositories

import (
	"context"

	"github.com/anonto42/movieshare/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, bookmark *models.PostBookmark) error
	DeleteBookmark(ctx context.Context, postID, userID uint) (bool, error)
	IsPostBookmarked(ctx context.Context, postID, userID uint) (bool, error)
	DeleteBookmarksByPostID(ctx context.Context, postID uint) error
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) CreateBookmark(ctx context.Context, bookmark *models.PostBookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

func (r *PostgresBookmarkRepository) DeleteBookmark(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.PostBookmark{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresBookmarkRepository) IsPostBookmarked(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostBookmark{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresBookmarkRepository) DeleteBookmarksByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostBookmark{}).Error
}
