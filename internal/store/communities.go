package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-lite/internal/models"
)

// CreateCommunity appends a community. Empty names are reported as
// ErrDuplicateCommunity, matching the single "exists or invalid" message.
func (s *Store) CreateCommunity(ctx context.Context, name string) (*models.Community, error) {
	if name == "" {
		return nil, ErrDuplicateCommunity
	}

	community := models.Community{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := communityExists(tx, name)
		if err != nil {
			return err
		}
		if ok {
			return ErrDuplicateCommunity
		}
		if err := tx.Create(&community).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCommunity
			}
			return fmt.Errorf("creating community: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// ListCommunities returns community names in creation order.
func (s *Store) ListCommunities(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := s.db.WithContext(ctx).Model(&models.Community{}).Order("id asc").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("listing communities: %w", err)
	}
	return names, nil
}

func (s *Store) CommunityExists(ctx context.Context, name string) (bool, error) {
	return communityExists(s.db.WithContext(ctx), name)
}

// Seed creates any of the named communities that don't exist yet.
func (s *Store) Seed(ctx context.Context, names ...string) error {
	for _, name := range names {
		if _, err := s.CreateCommunity(ctx, name); err != nil && !errors.Is(err, ErrDuplicateCommunity) {
			return fmt.Errorf("seeding %q: %w", name, err)
		}
	}
	return nil
}

// ToggleSubscription flips whether username follows community and returns
// the new state (true = subscribed).
func (s *Store) ToggleSubscription(ctx context.Context, username, community string) (bool, error) {
	var subscribed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := userExists(tx, username)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}
		if ok, err = communityExists(tx, community); err != nil {
			return err
		} else if !ok {
			return ErrUnknownCommunity
		}

		res := tx.Where("username = ? AND community = ?", username, community).Delete(&models.Subscription{})
		if res.Error != nil {
			return fmt.Errorf("removing subscription: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			subscribed = false
			return nil
		}

		// Savepoint: a concurrent toggle may have inserted the same row first.
		err = tx.Transaction(func(inner *gorm.DB) error {
			return inner.Create(&models.Subscription{Username: username, Community: community}).Error
		})
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("adding subscription: %w", err)
		}
		subscribed = true
		return nil
	})
	return subscribed, err
}

func communityExists(tx *gorm.DB, name string) (bool, error) {
	var count int64
	if err := tx.Model(&models.Community{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking community: %w", err)
	}
	return count > 0, nil
}

func subscriptionsOf(tx *gorm.DB, username string) ([]string, error) {
	names := []string{}
	if err := tx.Model(&models.Subscription{}).Where("username = ?", username).Order("id asc").Pluck("community", &names).Error; err != nil {
		return nil, fmt.Errorf("loading subscriptions: %w", err)
	}
	return names, nil
}
