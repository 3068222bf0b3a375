package models

import "time"

// PostBookmark represents a bookmarked post; same key shape as PostLike.
type PostBookmark struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

type BookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}
