package models

import "time"

type Post struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;not null" json:"title"`
	Body      string    `json:"body"`
	Community string    `gorm:"index;not null" json:"community"`
	Author    string    `gorm:"index;not null" json:"author"`
	Votes     int       `gorm:"not null;default:0" json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Loaded from the comments and votes tables, oldest first.
	Comments []string `gorm:"-" json:"comments"`
	Upvoters []string `gorm:"-" json:"upvoters"`
}

// UpvotedBy reports whether username already upvoted the post.
func (p *Post) UpvotedBy(username string) bool {
	for _, u := range p.Upvoters {
		if u == username {
			return true
		}
	}
	return false
}

type CreatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}
