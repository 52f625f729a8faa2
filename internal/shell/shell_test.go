package shell_test

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/reddit-lite/internal/commands"
	"github.com/emilythestrangee/reddit-lite/internal/database"
	"github.com/emilythestrangee/reddit-lite/internal/session"
	"github.com/emilythestrangee/reddit-lite/internal/shell"
	"github.com/emilythestrangee/reddit-lite/internal/store"
	"github.com/emilythestrangee/reddit-lite/internal/view"
)

func newShell(t *testing.T, opts ...shell.Option) (*shell.Shell, *store.Store, *bytes.Buffer) {
	t.Helper()
	svc, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	st := store.New(svc.GetDB())
	var out bytes.Buffer
	sh := shell.New(commands.New(st, session.New(st), nil), &out, opts...)
	return sh, st, &out
}

func TestRun_Scenario(t *testing.T) {
	sh, st, out := newShell(t)
	script := `
register alice
create-community Gaming
create-post Gaming Hi "hello there"
register bob
login bob
upvote Hi
upvote Hi
comment Hi first
comment Hi second comment
`
	code := sh.Run(context.Background(), strings.NewReader(script))
	assert.Equal(t, 0, code)

	ctx := context.Background()
	post, err := st.FindPostByTitle(ctx, "Hi")
	require.NoError(t, err)
	assert.Equal(t, 1, post.Votes)
	assert.Equal(t, "hello there", post.Body)
	assert.Equal(t, []string{"first", "second comment"}, post.Comments)

	alice, err := st.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, alice.TotalUpvotes)

	assert.Contains(t, out.String(), "You already upvoted this post!")
	// Registering bob went back to the welcome screen; votes and comments redraw in place.
	assert.Equal(t, view.Home(), sh.State())
}

func TestRun_StrictStopsWithKindExitCode(t *testing.T) {
	sh, _, out := newShell(t, shell.Strict())

	code := sh.Run(context.Background(), strings.NewReader("register alice\nregister alice\nregister carol\n"))
	assert.Equal(t, commands.DuplicateUser.ExitCode(), code)
	assert.Contains(t, out.String(), "Username already taken")
	assert.NotContains(t, out.String(), "carol")
}

func TestRun_StrictExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   commands.Kind
	}{
		{"not logged in", "create-community Gaming", commands.NotLoggedIn},
		{"unknown user", "login ghost", commands.UserNotFound},
		{"unknown community", "register a\ncreate-post Nowhere t b", commands.UnknownCommunity},
		{"duplicate community", "register a\ncreate-community X\ncreate-community X", commands.DuplicateCommunity},
		{"duplicate title", "register a\ncreate-community X\ncreate-post X t b\ncreate-post X t c", commands.DuplicateTitle},
		{"missing post", "comment Nope hi", commands.PostNotFound},
		{"profile needs login", "profile", commands.NotLoggedIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, _, _ := newShell(t, shell.Strict())
			assert.Equal(t, tt.want.ExitCode(), sh.Run(context.Background(), strings.NewReader(tt.script)))
		})
	}
}

func TestExec_UsageErrors(t *testing.T) {
	sh, _, _ := newShell(t)
	ctx := context.Background()

	var usage *shell.UsageError
	assert.ErrorAs(t, sh.Exec(ctx, "frobnicate"), &usage)
	assert.ErrorAs(t, sh.Exec(ctx, "register"), &usage)
	assert.ErrorAs(t, sh.Exec(ctx, "login a b"), &usage)
	assert.ErrorAs(t, sh.Exec(ctx, `comment "unterminated`), &usage)
	assert.NoError(t, sh.Exec(ctx, "   "))
	assert.NoError(t, sh.Exec(ctx, "# a comment"))
}

func TestSubscribe_TogglesInPlace(t *testing.T) {
	sh, st, out := newShell(t)
	ctx := context.Background()

	require.NoError(t, sh.Exec(ctx, "register alice"))
	require.NoError(t, sh.Exec(ctx, "create-community Gaming"))
	require.NoError(t, sh.Exec(ctx, "view Gaming"))
	assert.Contains(t, out.String(), "[Subscribe]")

	out.Reset()
	require.NoError(t, sh.Exec(ctx, "subscribe Gaming"))
	assert.Equal(t, view.FeedOf("Gaming"), sh.State())
	assert.Contains(t, out.String(), "[Unsubscribe]")
	alice, err := st.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gaming"}, alice.Subscriptions)

	out.Reset()
	require.NoError(t, sh.Exec(ctx, "subscribe Gaming"))
	assert.Equal(t, view.FeedOf("Gaming"), sh.State())
	assert.Contains(t, out.String(), "[Subscribe]")
	alice, err = st.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, alice.Subscriptions)
}

func TestView_UnknownCommunityKeepsScreen(t *testing.T) {
	sh, _, _ := newShell(t)
	ctx := context.Background()

	require.NoError(t, sh.Exec(ctx, "register alice"))
	require.NoError(t, sh.Exec(ctx, "create-community Gaming"))
	require.NoError(t, sh.Exec(ctx, "view Gaming"))

	err := sh.Exec(ctx, "view Cooking")
	assert.Equal(t, commands.UnknownCommunity, commands.KindOf(err))
	assert.Equal(t, view.FeedOf("Gaming"), sh.State())
}

func TestUpvoteByID(t *testing.T) {
	sh, st, _ := newShell(t)
	ctx := context.Background()

	require.NoError(t, sh.Exec(ctx, "register alice"))
	require.NoError(t, sh.Exec(ctx, "create-community Gaming"))
	require.NoError(t, sh.Exec(ctx, "create-post Gaming Hi body"))

	post, err := st.FindPostByTitle(ctx, "Hi")
	require.NoError(t, err)
	require.NoError(t, sh.Exec(ctx, "upvote id:"+strconv.Itoa(post.ID)))

	post, err = st.FindPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Votes)
}

func TestQuitStopsRun(t *testing.T) {
	sh, st, _ := newShell(t)

	code := sh.Run(context.Background(), strings.NewReader("quit\nregister alice\n"))
	assert.Equal(t, 0, code)

	ok, err := st.UserExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIDPrefixedTitleIsReachableByID(t *testing.T) {
	sh, st, out := newShell(t)
	ctx := context.Background()

	require.NoError(t, sh.Exec(ctx, "register alice"))
	require.NoError(t, sh.Exec(ctx, "create-community Gaming"))
	require.NoError(t, sh.Exec(ctx, "create-post Gaming id:999 body"))

	// id:N is always a post id, so the title itself does not resolve.
	err := sh.Exec(ctx, "upvote id:999")
	assert.Equal(t, commands.PostNotFound, commands.KindOf(err))

	post, err := st.FindPostByTitle(ctx, "id:999")
	require.NoError(t, err)
	require.NoError(t, sh.Exec(ctx, "upvote id:"+strconv.Itoa(post.ID)))

	out.Reset()
	require.NoError(t, sh.Exec(ctx, "help"))
	assert.Contains(t, out.String(), "id:N always means a post id")
}
