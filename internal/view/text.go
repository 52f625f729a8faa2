package view

import (
	"fmt"
	"io"
	"strings"
)

// WriteText prints page for a terminal.
func WriteText(w io.Writer, page *Page) error {
	var b strings.Builder

	switch {
	case page.Feed != nil:
		writeFeed(&b, page.Feed)
	case page.Profile != nil:
		writeProfile(&b, page.Profile)
	default:
		writeWelcome(&b, page)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeWelcome(b *strings.Builder, page *Page) {
	b.WriteString("== Welcome to reddit-lite ==\n")
	if page.Viewer == "" {
		b.WriteString("Log in or sign up to browse communities.\n")
		return
	}
	fmt.Fprintf(b, "Logged in as %s\n", page.Viewer)
	b.WriteString("Communities:\n")
	if page.Welcome == nil || len(page.Welcome.Sidebar) == 0 {
		b.WriteString("  (none yet)\n")
		return
	}
	for _, name := range page.Welcome.Sidebar {
		fmt.Fprintf(b, "  - %s\n", name)
	}
}

func writeFeed(b *strings.Builder, feed *FeedPage) {
	fmt.Fprintf(b, "== Posts in %s ==\n", feed.Community)
	if feed.Subscribe != nil {
		fmt.Fprintf(b, "[%s]\n", feed.Subscribe.Label)
	}
	if len(feed.Posts) == 0 {
		b.WriteString("No posts yet.\n")
		return
	}
	for _, p := range feed.Posts {
		fmt.Fprintf(b, "\n#%d %s\n", p.ID, p.Title)
		if p.Body != "" {
			fmt.Fprintf(b, "   %s\n", p.Body)
		}
		fmt.Fprintf(b, "   By %s\n", p.Author)
		votes := fmt.Sprintf("   %d votes", p.Votes)
		if p.Upvoted {
			votes += " (upvoted)"
		}
		b.WriteString(votes + "\n")
		for _, c := range p.Comments {
			fmt.Fprintf(b, "   > %s\n", c)
		}
	}
}

func writeProfile(b *strings.Builder, profile *ProfilePage) {
	fmt.Fprintf(b, "== Profile: %s ==\n", profile.Username)
	fmt.Fprintf(b, "Total upvotes: %d\n", profile.TotalUpvotes)
	b.WriteString("Subscribed communities:\n")
	if len(profile.Subscriptions) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, name := range profile.Subscriptions {
		fmt.Fprintf(b, "  - %s\n", name)
	}
}
