package models

import "time"

// Community is a named board ("subreddit"). Names are unique and never change.
type Community struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommunityRequest struct {
	Name string `json:"name"`
}
