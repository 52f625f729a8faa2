package models

import "time"

// Comment rows are append-only; ID order is submission order.
type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	PostID    int       `gorm:"index;not null" json:"post_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}
