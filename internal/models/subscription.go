package models

import "time"

// Subscription links a user to a community they follow.
type Subscription struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex:idx_sub_user_community;not null" json:"username"`
	Community string    `gorm:"uniqueIndex:idx_sub_user_community;not null" json:"community"`
	CreatedAt time.Time `json:"created_at"`
}

// All lists every model the database layer migrates.
func All() []any {
	return []any{
		&User{},
		&Community{},
		&Post{},
		&Comment{},
		&Vote{},
		&Subscription{},
	}
}
