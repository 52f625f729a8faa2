// Package commands turns user intents into store and session calls.
// Each command either succeeds or returns an error whose Kind names the
// failure; commands never write user-facing output.
package commands

import (
	"context"
	"log/slog"

	"github.com/emilythestrangee/reddit-lite/internal/models"
	"github.com/emilythestrangee/reddit-lite/internal/session"
	"github.com/emilythestrangee/reddit-lite/internal/store"
)

type Handlers struct {
	store   *store.Store
	session *session.Session
	log     *slog.Logger
}

func New(st *store.Store, sess *session.Session, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: st, session: sess, log: logger}
}

func (h *Handlers) Session() *session.Session {
	return h.session
}

func (h *Handlers) Store() *store.Store {
	return h.store
}

// Register creates the user and logs them in.
func (h *Handlers) Register(ctx context.Context, username string) (*models.User, error) {
	user, err := h.store.RegisterUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := h.session.Login(ctx, username); err != nil {
		return nil, err
	}
	h.log.Debug("user registered", "username", username)
	return user, nil
}

func (h *Handlers) Login(ctx context.Context, username string) error {
	if err := h.session.Login(ctx, username); err != nil {
		return err
	}
	h.log.Debug("user logged in", "username", username)
	return nil
}

func (h *Handlers) Logout() {
	h.session.Logout()
}

func (h *Handlers) CreateCommunity(ctx context.Context, name string) (*models.Community, error) {
	user, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	community, err := h.store.CreateCommunity(ctx, name)
	if err != nil {
		return nil, err
	}
	h.log.Debug("community created", "name", name, "by", user)
	return community, nil
}

// CreatePost posts as the current user.
func (h *Handlers) CreatePost(ctx context.Context, community, title, body string) (*models.Post, error) {
	user, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	post, err := h.store.CreatePost(ctx, title, body, community, user)
	if err != nil {
		return nil, err
	}
	h.log.Debug("post created", "id", post.ID, "community", community, "author", user)
	return post, nil
}

func (h *Handlers) Upvote(ctx context.Context, postID int) (*models.Post, error) {
	user, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	post, err := h.store.Upvote(ctx, postID, user)
	if err != nil {
		return nil, err
	}
	h.log.Debug("post upvoted", "id", postID, "by", user, "votes", post.Votes)
	return post, nil
}

// UpvoteByTitle resolves the post by title first.
func (h *Handlers) UpvoteByTitle(ctx context.Context, title string) (*models.Post, error) {
	if _, err := h.requireUser(); err != nil {
		return nil, err
	}
	post, err := h.store.FindPostByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return h.Upvote(ctx, post.ID)
}

// Comment needs no login; comments are anonymous.
func (h *Handlers) Comment(ctx context.Context, postID int, text string) (*models.Post, error) {
	post, err := h.store.AddComment(ctx, postID, text)
	if err != nil {
		return nil, err
	}
	h.log.Debug("comment added", "post", postID, "comments", len(post.Comments))
	return post, nil
}

func (h *Handlers) CommentByTitle(ctx context.Context, title, text string) (*models.Post, error) {
	post, err := h.store.FindPostByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return h.Comment(ctx, post.ID, text)
}

// ToggleSubscription flips the current user's subscription and returns the
// new state.
func (h *Handlers) ToggleSubscription(ctx context.Context, community string) (bool, error) {
	user, err := h.requireUser()
	if err != nil {
		return false, err
	}
	subscribed, err := h.store.ToggleSubscription(ctx, user, community)
	if err != nil {
		return false, err
	}
	h.log.Debug("subscription toggled", "user", user, "community", community, "subscribed", subscribed)
	return subscribed, nil
}

func (h *Handlers) requireUser() (string, error) {
	user, ok := h.session.Current()
	if !ok {
		return "", ErrNotLoggedIn
	}
	return user, nil
}
