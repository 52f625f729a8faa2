package models

import "time"

type User struct {
	ID           int    `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	TotalUpvotes int    `gorm:"not null;default:0" json:"total_upvotes"` // upvotes received across all of the user's posts

	// Filled by the store from the subscriptions table, in subscription order.
	Subscriptions []string `gorm:"-" json:"subscriptions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSubscribed reports whether the user follows the named community.
func (u *User) IsSubscribed(community string) bool {
	for _, name := range u.Subscriptions {
		if name == community {
			return true
		}
	}
	return false
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}
