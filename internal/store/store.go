// Package store owns the forum's users, communities and posts.
//
// Every mutation runs in its own transaction; uniqueness (usernames,
// community names, post titles, one vote per user and post) is enforced by
// unique indexes as well as by the explicit checks, so the store stays
// consistent when the HTTP server calls it concurrently.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-lite/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RegisterUser creates a user with no subscriptions and no upvotes.
func (s *Store) RegisterUser(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, ErrInvalidInput
	}

	user := models.User{Username: username}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := userExists(tx, username)
		if err != nil {
			return err
		}
		if ok {
			return ErrDuplicateUser
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUser
			}
			return fmt.Errorf("creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Subscriptions = []string{}
	return &user, nil
}

func (s *Store) UserExists(ctx context.Context, username string) (bool, error) {
	return userExists(s.db.WithContext(ctx), username)
}

// GetUser loads a user together with their subscriptions.
func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	subs, err := subscriptionsOf(db, username)
	if err != nil {
		return nil, err
	}
	user.Subscriptions = subs
	return &user, nil
}

func userExists(tx *gorm.DB, username string) (bool, error) {
	var count int64
	if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return count > 0, nil
}
