package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/movieshare/backend/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = gorm.ErrDuplicatedKey

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation. The gorm
// connection must be opened with TranslateError enabled.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// Repositories bundles every repository over one gorm handle.
type Repositories struct {
	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Bookmarks     BookmarkRepository
	Notifications NotificationRepository

	db *gorm.DB
}

// New builds the repositories over db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewPostgresUserRepository(db),
		Posts:         NewPostgresPostRepository(db),
		Comments:      NewPostgresCommentRepository(db),
		Likes:         NewPostgresLikeRepository(db),
		Bookmarks:     NewPostgresBookmarkRepository(db),
		Notifications: NewPostgresNotificationRepository(db),
		db:            db,
	}
}

// Transaction runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.PostBookmark{},
		&models.Comment{},
		&models.Notification{},
	)
}
