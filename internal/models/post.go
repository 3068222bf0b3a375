package models

import "time"

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Post is a piece of content owned by a user.
type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Visibility string    `json:"visibility" gorm:"size:20;not null;default:'public';index"`
	OwnerID    uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`

	// LikeCount is computed by listing queries and never stored.
	LikeCount int64 `json:"like_count" gorm:"->;-:migration"`
}

// PostSort orders post listings by creation time.
type PostSort string

const (
	SortNewest PostSort = "newest"
	SortOldest PostSort = "oldest"
)

// PostFilter drives the public post listing.
type PostFilter struct {
	Search string
	Sort   PostSort
	Limit  int
	Offset int
}

type CreatePostRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=200"`
	Content    string `json:"content" validate:"required,min=1"`
	Visibility string `json:"visibility,omitempty" validate:"omitempty,max=20"`
}

type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

type ListPostsQuery struct {
	Search string `query:"search" validate:"omitempty,max=200"`
	Sort   string `query:"sort" validate:"omitempty,oneof=newest oldest"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}
