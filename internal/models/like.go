package models

import "time"

// PostLike records that a user likes a post. The composite key allows one row per pair.
type PostLike struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}
