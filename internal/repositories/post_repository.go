package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/movieshare/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPublicPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	ListPostsByOwner(ctx context.Context, ownerID uint) ([]models.Post, error)
	ListBookmarkedPosts(ctx context.Context, userID uint) ([]models.Post, error)
	UpdatePost(ctx context.Context, id uint, title, content string) error
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// withLikeCount selects posts together with their like count.
func (r *PostgresPostRepository) withLikeCount(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.*, COUNT(post_likes.user_id) AS like_count").
		Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
		Group("posts.id")
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withLikeCount(ctx).Where("posts.id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// likeEscaper makes search input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ListPublicPosts returns public posts only, whatever the filter says.
func (r *PostgresPostRepository) ListPublicPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	query := r.withLikeCount(ctx).Where("posts.visibility = ?", models.VisibilityPublic)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	if filter.Sort == models.SortOldest {
		query = query.Order("posts.created_at ASC").Order("posts.id ASC")
	} else {
		query = query.Order("posts.created_at DESC").Order("posts.id DESC")
	}

	var posts []models.Post
	if err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsByOwner returns every post of ownerID regardless of visibility.
func (r *PostgresPostRepository) ListPostsByOwner(ctx context.Context, ownerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withLikeCount(ctx).
		Where("posts.owner_id = ?", ownerID).
		Order("posts.created_at DESC").Order("posts.id DESC").
		Find(&posts).Error
	return posts, err
}

// ListBookmarkedPosts returns the posts userID bookmarked, newest post first.
func (r *PostgresPostRepository) ListBookmarkedPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withLikeCount(ctx).
		Where("posts.id IN (?)",
			r.db.WithContext(ctx).Model(&models.PostBookmark{}).Select("post_id").Where("user_id = ?", userID),
		).
		Order("posts.created_at DESC").Order("posts.id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) UpdatePost(ctx context.Context, id uint, title, content string) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "content": content})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes the post row only. Dependent rows are cleaned up by the
// caller inside the same transaction.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
