package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-lite/internal/models"
)

// CreatePost appends a post with zero votes and no comments. The post gets a
// generated ID; titles stay unique so title lookups remain unambiguous.
func (s *Store) CreatePost(ctx context.Context, title, body, community, author string) (*models.Post, error) {
	if title == "" {
		return nil, ErrInvalidInput
	}

	post := models.Post{
		Title:     title,
		Body:      body,
		Community: community,
		Author:    author,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := communityExists(tx, community)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUnknownCommunity
		}
		if ok, err = userExists(tx, author); err != nil {
			return err
		} else if !ok {
			return ErrUserNotFound
		}

		var count int64
		if err := tx.Model(&models.Post{}).Where("title = ?", title).Count(&count).Error; err != nil {
			return fmt.Errorf("checking title: %w", err)
		}
		if count > 0 {
			return ErrDuplicateTitle
		}

		if err := tx.Create(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTitle
			}
			return fmt.Errorf("creating post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	post.Comments = []string{}
	post.Upvoters = []string{}
	return &post, nil
}

// FindPost returns a post with its comments and upvoters.
func (s *Store) FindPost(ctx context.Context, id int) (*models.Post, error) {
	return s.findPost(ctx, "id = ?", id)
}

func (s *Store) FindPostByTitle(ctx context.Context, title string) (*models.Post, error) {
	return s.findPost(ctx, "title = ?", title)
}

func (s *Store) findPost(ctx context.Context, query string, arg any) (*models.Post, error) {
	db := s.db.WithContext(ctx)

	var post models.Post
	if err := db.Where(query, arg).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("loading post: %w", err)
	}

	posts := []models.Post{post}
	if err := hydrate(db, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// ListPosts returns the community's posts in creation order. A community
// without posts (or an unknown one) yields an empty slice.
func (s *Store) ListPosts(ctx context.Context, community string) ([]models.Post, error) {
	db := s.db.WithContext(ctx)

	posts := []models.Post{}
	if err := db.Where("community = ?", community).Order("id asc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	if err := hydrate(db, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Upvote records username's upvote on the post. The post's vote count and
// the author's total upvotes each go up by one, at most once per user.
func (s *Store) Upvote(ctx context.Context, postID int, username string) (*models.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return fmt.Errorf("loading post: %w", err)
		}

		ok, err := userExists(tx, username)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}

		// Check if user already voted
		var count int64
		if err := tx.Model(&models.Vote{}).Where("post_id = ? AND username = ?", post.ID, username).Count(&count).Error; err != nil {
			return fmt.Errorf("checking vote: %w", err)
		}
		if count > 0 {
			return ErrAlreadyUpvoted
		}

		vote := models.Vote{PostID: post.ID, Username: username}
		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyUpvoted
			}
			return fmt.Errorf("recording vote: %w", err)
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("votes", gorm.Expr("votes + ?", 1)).Error; err != nil {
			return fmt.Errorf("counting vote: %w", err)
		}
		if err := tx.Model(&models.User{}).Where("username = ?", post.Author).
			UpdateColumn("total_upvotes", gorm.Expr("total_upvotes + ?", 1)).Error; err != nil {
			return fmt.Errorf("crediting author: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindPost(ctx, postID)
}

// AddComment appends text to the post's comments. Empty text is accepted.
func (s *Store) AddComment(ctx context.Context, postID int, text string) (*models.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return fmt.Errorf("loading post: %w", err)
		}
		if count == 0 {
			return ErrPostNotFound
		}

		comment := models.Comment{PostID: postID, Body: text}
		if err := tx.Create(&comment).Error; err != nil {
			return fmt.Errorf("creating comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindPost(ctx, postID)
}

// hydrate fills Comments and Upvoters for posts in place, oldest first.
func hydrate(tx *gorm.DB, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int, len(posts))
	index := make(map[int]*models.Post, len(posts))
	for i := range posts {
		posts[i].Comments = []string{}
		posts[i].Upvoters = []string{}
		ids[i] = posts[i].ID
		index[posts[i].ID] = &posts[i]
	}

	var comments []models.Comment
	if err := tx.Where("post_id IN ?", ids).Order("id asc").Find(&comments).Error; err != nil {
		return fmt.Errorf("loading comments: %w", err)
	}
	for _, c := range comments {
		p := index[c.PostID]
		p.Comments = append(p.Comments, c.Body)
	}

	var votes []models.Vote
	if err := tx.Where("post_id IN ?", ids).Order("id asc").Find(&votes).Error; err != nil {
		return fmt.Errorf("loading votes: %w", err)
	}
	for _, v := range votes {
		p := index[v.PostID]
		p.Upvoters = append(p.Upvoters, v.Username)
	}
	return nil
}
