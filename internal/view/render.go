// Package view projects store and session state into display pages. It
// only reads.
package view

import (
	"context"

	"github.com/emilythestrangee/reddit-lite/internal/models"
	"github.com/emilythestrangee/reddit-lite/internal/store"
)

// Reader is the read side of the store used for rendering.
type Reader interface {
	ListCommunities(ctx context.Context) ([]string, error)
	CommunityExists(ctx context.Context, name string) (bool, error)
	ListPosts(ctx context.Context, community string) ([]models.Post, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// Viewer reports the logged-in user, if any.
type Viewer interface {
	Current() (string, bool)
}

type Page struct {
	Screen  string       `json:"screen"`
	Viewer  string       `json:"viewer,omitempty"`
	Welcome *WelcomePage `json:"welcome,omitempty"`
	Feed    *FeedPage    `json:"feed,omitempty"`
	Profile *ProfilePage `json:"profile,omitempty"`
}

type WelcomePage struct {
	// Sidebar is only populated for logged-in viewers.
	Sidebar []string `json:"sidebar"`
}

type FeedPage struct {
	Community string           `json:"community"`
	Subscribe *SubscribeButton `json:"subscribe,omitempty"`
	Posts     []PostView       `json:"posts"`
}

type SubscribeButton struct {
	Subscribed bool   `json:"subscribed"`
	Label      string `json:"label"`
}

type PostView struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Author    string   `json:"author"`
	Votes     int      `json:"votes"`
	Upvoted   bool     `json:"upvoted"`
	CanUpvote bool     `json:"can_upvote"`
	Comments  []string `json:"comments"`
}

type ProfilePage struct {
	Username      string   `json:"username"`
	Subscriptions []string `json:"subscriptions"`
	TotalUpvotes  int      `json:"total_upvotes"`
	Own           bool     `json:"own"`
}

// Render builds the page for state. Unknown communities and users are
// reported with the store's errors.
func Render(ctx context.Context, r Reader, viewer Viewer, state State) (*Page, error) {
	user, loggedIn := viewer.Current()
	page := &Page{Screen: state.Screen.String(), Viewer: user}

	switch state.Screen {
	case Feed:
		feed, err := renderFeed(ctx, r, user, loggedIn, state.Community)
		if err != nil {
			return nil, err
		}
		page.Feed = feed
	case Profile:
		target, err := r.GetUser(ctx, state.Username)
		if err != nil {
			return nil, err
		}
		page.Profile = &ProfilePage{
			Username:      target.Username,
			Subscriptions: target.Subscriptions,
			TotalUpvotes:  target.TotalUpvotes,
			Own:           loggedIn && target.Username == user,
		}
	default:
		page.Welcome = &WelcomePage{Sidebar: []string{}}
		if loggedIn {
			names, err := r.ListCommunities(ctx)
			if err != nil {
				return nil, err
			}
			page.Welcome.Sidebar = names
		}
	}
	return page, nil
}

func renderFeed(ctx context.Context, r Reader, user string, loggedIn bool, community string) (*FeedPage, error) {
	ok, err := r.CommunityExists(ctx, community)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.ErrUnknownCommunity
	}

	posts, err := r.ListPosts(ctx, community)
	if err != nil {
		return nil, err
	}

	feed := &FeedPage{Community: community, Posts: make([]PostView, 0, len(posts))}
	for i := range posts {
		p := &posts[i]
		upvoted := loggedIn && p.UpvotedBy(user)
		feed.Posts = append(feed.Posts, PostView{
			ID:        p.ID,
			Title:     p.Title,
			Body:      p.Body,
			Author:    p.Author,
			Votes:     p.Votes,
			Upvoted:   upvoted,
			CanUpvote: loggedIn && !upvoted,
			Comments:  p.Comments,
		})
	}

	if loggedIn {
		me, err := r.GetUser(ctx, user)
		if err != nil {
			return nil, err
		}
		feed.Subscribe = subscribeButton(me.IsSubscribed(community))
	}
	return feed, nil
}

func subscribeButton(subscribed bool) *SubscribeButton {
	if subscribed {
		return &SubscribeButton{Subscribed: true, Label: "Unsubscribe"}
	}
	return &SubscribeButton{Label: "Subscribe"}
}
