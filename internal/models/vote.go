package models

import "time"

// Vote model - one row per (post, user) upvote; the unique index is what
// keeps a user from upvoting the same post twice.
type Vote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	PostID    int       `gorm:"uniqueIndex:idx_vote_post_user;not null" json:"post_id"`
	Username  string    `gorm:"uniqueIndex:idx_vote_post_user;not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
