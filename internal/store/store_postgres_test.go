package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/emilythestrangee/reddit-lite/internal/database"
	"github.com/emilythestrangee/reddit-lite/internal/models"
	"github.com/emilythestrangee/reddit-lite/internal/store"
)

func newPostgresStore(t *testing.T) *store.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("reddit_lite"),
		postgres.WithUsername("forum"),
		postgres.WithPassword("forum"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dialector, err := database.PostgresDialector(dsn)
	require.NoError(t, err)
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return store.New(db)
}

// TestPostgres_ConcurrentUpvotes fires the same upvote from many goroutines
// against a real Postgres; exactly one may count.
func TestPostgres_ConcurrentUpvotes(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "alice")
	require.NoError(t, err)
	_, err = s.RegisterUser(ctx, "bob")
	require.NoError(t, err)
	_, err = s.CreateCommunity(ctx, "Gaming")
	require.NoError(t, err)
	post, err := s.CreatePost(ctx, "Hi", "body", "Gaming", "alice")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Upvote(ctx, post.ID, "bob"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	post, err = s.FindPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Votes)

	alice, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, alice.TotalUpvotes)
}

// TestPostgres_ConcurrentFirstToggles races first-time subscriptions; a
// losing insert must not surface as an error.
func TestPostgres_ConcurrentFirstToggles(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	_, err := s.RegisterUser(ctx, "alice")
	require.NoError(t, err)
	_, err = s.CreateCommunity(ctx, "Gaming")
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ToggleSubscription(ctx, "alice", "Gaming"); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, errs)
	alice, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(alice.Subscriptions), 1)
}
