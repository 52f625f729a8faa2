package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/emilythestrangee/reddit-lite/internal/commands"
	"github.com/emilythestrangee/reddit-lite/internal/models"
	"github.com/emilythestrangee/reddit-lite/internal/view"
)

type command struct {
	usage   string
	help    string
	minArgs int
	maxArgs int // -1: rest of the line is joined into the last argument
	run     func(ctx context.Context, s *Shell, args []string) error
}

var table map[string]command

// order is the listing order for help.
var order = []string{
	"register", "login", "logout", "whoami", "create-community", "communities",
	"create-post", "upvote", "comment", "subscribe", "view", "profile", "home", "help", "quit",
}

func init() {
	table = map[string]command{
		"register":         {"register <username>", "create an account and log in", 1, 1, runRegister},
		"login":            {"login <username>", "log in as an existing user", 1, 1, runLogin},
		"logout":           {"logout", "log out", 0, 0, runLogout},
		"whoami":           {"whoami", "show the logged-in user", 0, 0, runWhoami},
		"create-community": {"create-community <name>", "create a community", 1, 1, runCreateCommunity},
		"communities":      {"communities", "list communities", 0, 0, runCommunities},
		"create-post":      {"create-post <community> <title> <body>", "post to a community", 2, -1, runCreatePost},
		"upvote":           {"upvote <title|id:N>", "upvote a post once (id:N always means a post id)", 1, 1, runUpvote},
		"comment":          {"comment <title|id:N> <text>", "comment on a post (id:N always means a post id)", 1, -1, runComment},
		"subscribe":        {"subscribe <community>", "toggle your subscription", 1, 1, runSubscribe},
		"view":             {"view <community>", "show a community's posts", 1, 1, runView},
		"profile":          {"profile [<username>]", "show a profile (yours by default)", 0, 1, runProfile},
		"home":             {"home", "back to the welcome screen", 0, 0, runHome},
		"help":             {"help", "list commands", 0, 0, runHelp},
		"quit":             {"quit", "leave the shell", 0, 0, runQuit},
	}
	table["exit"] = table["quit"]
}

func rest(args []string, from int) string {
	if len(args) <= from {
		return ""
	}
	return strings.Join(args[from:], " ")
}

func runRegister(ctx context.Context, s *Shell, args []string) error {
	if _, err := s.cmds.Register(ctx, args[0]); err != nil {
		return err
	}
	s.say("Account created for %s", args[0])
	return s.goTo(ctx, s.state.Next(view.Event{Kind: view.LoggedIn}))
}

func runLogin(ctx context.Context, s *Shell, args []string) error {
	if err := s.cmds.Login(ctx, args[0]); err != nil {
		return err
	}
	s.say("Logged in as %s", args[0])
	return s.goTo(ctx, s.state.Next(view.Event{Kind: view.LoggedIn}))
}

func runLogout(ctx context.Context, s *Shell, _ []string) error {
	s.cmds.Logout()
	s.say("Logged out.")
	return s.goTo(ctx, s.state.Next(view.Event{Kind: view.LoggedIn}))
}

func runWhoami(_ context.Context, s *Shell, _ []string) error {
	if user, ok := s.cmds.Session().Current(); ok {
		s.say("%s", user)
		return nil
	}
	return commands.ErrNotLoggedIn
}

func runCreateCommunity(ctx context.Context, s *Shell, args []string) error {
	if _, err := s.cmds.CreateCommunity(ctx, args[0]); err != nil {
		return err
	}
	s.say("Community '%s' created!", args[0])
	return s.show(ctx)
}

func runCommunities(ctx context.Context, s *Shell, _ []string) error {
	names, err := s.cmds.Store().ListCommunities(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		s.say("  %s", name)
	}
	return nil
}

func runCreatePost(ctx context.Context, s *Shell, args []string) error {
	community, title := args[0], args[1]
	if _, err := s.cmds.CreatePost(ctx, community, title, rest(args, 2)); err != nil {
		return err
	}
	return s.goTo(ctx, s.state.Next(view.Event{Kind: view.SelectedCommunity, Community: community}))
}

func runUpvote(ctx context.Context, s *Shell, args []string) error {
	var (
		post *models.Post
		err  error
	)
	if id, ok := postRef(args[0]); ok {
		post, err = s.cmds.Upvote(ctx, id)
	} else {
		post, err = s.cmds.UpvoteByTitle(ctx, args[0])
	}
	if err != nil {
		return err
	}
	s.say("Upvoted %q (%d votes)", post.Title, post.Votes)
	return s.show(ctx)
}

func runComment(ctx context.Context, s *Shell, args []string) error {
	text := rest(args, 1)
	var err error
	if id, ok := postRef(args[0]); ok {
		_, err = s.cmds.Comment(ctx, id, text)
	} else {
		_, err = s.cmds.CommentByTitle(ctx, args[0], text)
	}
	if err != nil {
		return err
	}
	return s.show(ctx)
}

func runSubscribe(ctx context.Context, s *Shell, args []string) error {
	subscribed, err := s.cmds.ToggleSubscription(ctx, args[0])
	if err != nil {
		return err
	}
	if subscribed {
		s.say("Subscribed to %s", args[0])
	} else {
		s.say("Unsubscribed from %s", args[0])
	}
	return s.goTo(ctx, s.state.Next(view.Event{Kind: view.Subscribed, Community: args[0]}))
}

func runView(ctx context.Context, s *Shell, args []string) error {
	return s.goTo(ctx, s.state.Next(view.Event{Kind: view.SelectedCommunity, Community: args[0]}))
}

func runProfile(ctx context.Context, s *Shell, args []string) error {
	target := rest(args, 0)
	if target == "" {
		user, ok := s.cmds.Session().Current()
		if !ok {
			return commands.ErrNotLoggedIn
		}
		target = user
	}
	return s.goTo(ctx, s.state.Next(view.Event{Kind: view.OpenedProfile, Username: target}))
}

func runHome(ctx context.Context, s *Shell, _ []string) error {
	return s.goTo(ctx, view.Home())
}

func runHelp(_ context.Context, s *Shell, _ []string) error {
	for _, name := range order {
		cmd := table[name]
		s.say("  %-40s %s", cmd.usage, cmd.help)
	}
	return nil
}

func runQuit(context.Context, *Shell, []string) error {
	return errQuit
}

// Describe returns the usage line of every command, for --help output.
func Describe() string {
	var b strings.Builder
	for _, name := range order {
		fmt.Fprintf(&b, "  %s\n", table[name].usage)
	}
	return b.String()
}
