package view

import "fmt"

type Screen int

const (
	Welcome Screen = iota
	Feed
	Profile
)

func (s Screen) String() string {
	switch s {
	case Feed:
		return "feed"
	case Profile:
		return "profile"
	default:
		return "welcome"
	}
}

// State is what the user is looking at. The community of a feed lives here
// rather than being recovered from rendered output.
type State struct {
	Screen    Screen
	Community string
	Username  string
}

func Home() State { return State{Screen: Welcome} }

func FeedOf(community string) State { return State{Screen: Feed, Community: community} }

func ProfileOf(username string) State { return State{Screen: Profile, Username: username} }

func (s State) String() string {
	switch s.Screen {
	case Feed:
		return fmt.Sprintf("feed(%s)", s.Community)
	case Profile:
		return fmt.Sprintf("profile(%s)", s.Username)
	default:
		return "welcome"
	}
}

type EventKind int

const (
	LoggedIn EventKind = iota // login, signup or logout
	SelectedCommunity
	OpenedProfile
	Mutated // vote, comment, post: redraw in place
	Subscribed // subscription toggled: redraw in place
)

type Event struct {
	Kind      EventKind
	Community string
	Username  string // target profile
}

// Next applies ev to s. Mutations, subscription toggles included, keep the
// current screen so it redraws in place.
func (s State) Next(ev Event) State {
	switch ev.Kind {
	case LoggedIn:
		return Home()
	case SelectedCommunity:
		return FeedOf(ev.Community)
	case OpenedProfile:
		return ProfileOf(ev.Username)
	default:
		return s
	}
}
