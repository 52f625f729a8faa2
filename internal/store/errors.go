package store

import "errors"

// Failure kinds reported by the store. Callers match them with errors.Is;
// infrastructure errors are wrapped and never match any of these.
var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrDuplicateCommunity = errors.New("community already exists or has an invalid name")
	ErrDuplicateTitle     = errors.New("a post with this title already exists")
	ErrUnknownCommunity   = errors.New("community does not exist")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrPostNotFound       = errors.New("post not found")
	ErrAlreadyUpvoted     = errors.New("you already upvoted this post")
	ErrInvalidInput       = errors.New("value must not be empty")
)
