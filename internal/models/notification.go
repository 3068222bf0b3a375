package models

import "time"

// NotificationType tags what happened to the recipient's post.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
)

// Notification is addressed to a post owner when someone else engages with the post.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"` // recipient
	PostID    uint             `json:"post_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"size:20;not null"`
	Seen      bool             `json:"seen" gorm:"not null;default:false"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}
