// Package shell is a line-oriented front end for the forum commands.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/emilythestrangee/reddit-lite/internal/commands"
	"github.com/emilythestrangee/reddit-lite/internal/view"
)

var errQuit = errors.New("quit")

// UsageError reports a malformed command line.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

type Shell struct {
	cmds   *commands.Handlers
	state  view.State
	out    io.Writer
	log    *slog.Logger
	strict bool
	prompt string
}

type Option func(*Shell)

// Strict makes Run stop at the first failing command.
func Strict() Option {
	return func(s *Shell) { s.strict = true }
}

// Prompt sets the prompt printed before each line; empty disables it.
func Prompt(p string) Option {
	return func(s *Shell) { s.prompt = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.log = l }
}

func New(cmds *commands.Handlers, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		cmds:  cmds,
		state: view.Home(),
		out:   out,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the screen the shell is currently showing.
func (s *Shell) State() view.State {
	return s.state
}

// Run executes lines from in until EOF or quit. It returns 0, or in strict
// mode the exit code of the first failure.
func (s *Shell) Run(ctx context.Context, in io.Reader) int {
	scanner := bufio.NewScanner(in)
	s.printPrompt()
	for scanner.Scan() {
		err := s.Exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return 0
		}
		if err != nil {
			s.report(err)
			if s.strict {
				return exitCode(err)
			}
		}
		s.printPrompt()
	}
	if err := scanner.Err(); err != nil {
		s.log.Error("reading input", "error", err)
		return 1
	}
	return 0
}

func exitCode(err error) int {
	var usage *UsageError
	if errors.As(err, &usage) {
		return 1
	}
	return commands.KindOf(err).ExitCode()
}

func (s *Shell) printPrompt() {
	if s.prompt != "" {
		fmt.Fprint(s.out, s.prompt)
	}
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args, err := shellwords.Parse(line)
	if err != nil {
		return &UsageError{Usage: fmt.Sprintf("could not parse %q: %v", line, err)}
	}
	if len(args) == 0 {
		return nil
	}

	name, args := args[0], args[1:]
	cmd, ok := table[name]
	if !ok {
		return &UsageError{Usage: fmt.Sprintf("unknown command %q (try help)", name)}
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return &UsageError{Usage: cmd.usage}
	}
	return cmd.run(ctx, s, args)
}

// show renders the current screen.
func (s *Shell) show(ctx context.Context) error {
	page, err := view.Render(ctx, s.cmds.Store(), s.cmds.Session(), s.state)
	if err != nil {
		return err
	}
	return view.WriteText(s.out, page)
}

// goTo renders next and only switches to it when rendering succeeds.
func (s *Shell) goTo(ctx context.Context, next view.State) error {
	prev := s.state
	s.state = next
	if err := s.show(ctx); err != nil {
		s.state = prev
		return err
	}
	return nil
}

func (s *Shell) say(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// report turns a failure into the message the user sees.
func (s *Shell) report(err error) {
	var usage *UsageError
	if errors.As(err, &usage) {
		s.say("%s", usage.Error())
		return
	}

	kind := commands.KindOf(err)
	switch kind {
	case commands.DuplicateUser:
		s.say("Username already taken. Please choose another.")
	case commands.UserNotFound:
		s.say("User does not exist. Please sign up.")
	case commands.DuplicateCommunity:
		s.say("Community already exists or invalid name.")
	case commands.UnknownCommunity:
		s.say("No such community.")
	case commands.DuplicateTitle:
		s.say("A post with that title already exists.")
	case commands.PostNotFound:
		s.say("Post not found.")
	case commands.AlreadyUpvoted:
		s.say("You already upvoted this post!")
	case commands.NotLoggedIn:
		s.say("Please log in first.")
	case commands.InvalidInput:
		s.say("That value can't be empty.")
	default:
		s.log.Error("command failed", "error", err)
		s.say("Something went wrong: %v", err)
	}
	s.log.Debug("command rejected", "kind", kind.String(), "code", kind.ExitCode())
}

// postRef parses "id:<n>" post references; anything else is a title.
func postRef(ref string) (int, bool) {
	raw, ok := strings.CutPrefix(ref, "id:")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	return id, err == nil
}
