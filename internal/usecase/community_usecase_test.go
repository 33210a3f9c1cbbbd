package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"jobconnect/internal/domain/post"
	"jobconnect/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ada      = user.User{ID: 1, Email: "ada@example.com", FullName: "Ada", Role: user.RoleJobSeeker}
	bob      = user.User{ID: 2, Email: "bob@example.com", FullName: "Bob", Role: user.RoleEmployer}
	root     = user.User{ID: 3, Email: "root@example.com", FullName: "Root", IsAdmin: true}
)

type communityFixture struct {
	uc       *Community
	local    *memLocalPosts
	remote   *memRemoteStore
	cache    *memCache
	notifier *recordingNotifier
}

func newCommunityFixture(withRemote bool) communityFixture {
	f := communityFixture{
		local:    newMemLocalPosts(),
		cache:    newMemCache(),
		notifier: &recordingNotifier{},
	}
	deps := CommunityDeps{
		Local:    f.local,
		Users:    newMemUserRepo(ada, bob, root),
		Profiles: newMemProfileRepo(user.Profile{UserID: 2, Company: "Acme"}),
		Cache:    f.cache,
		Notifier: f.notifier,
	}
	if withRemote {
		f.remote = newMemRemoteStore()
		deps.Remote = f.remote
	}
	f.uc = NewCommunityUsecase(deps)
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func TestCommunity_CreatePostGoesRemoteFirst(t *testing.T) {
	f := newCommunityFixture(true)

	p, err := f.uc.CreatePost(context.Background(), 2, "  Hiring Go devs  ")
	require.NoError(t, err)
	assert.Equal(t, "doc1", p.ID)
	assert.Equal(t, "Bob", p.Author)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Hiring Go devs", p.Content)
	assert.Equal(t, "Just now", p.TimeAgo)
	assert.False(t, p.PendingSync)

	mirror, err := f.local.GetByRemoteID(context.Background(), "doc1")
	require.NoError(t, err)
	assert.Equal(t, "Hiring Go devs", mirror.Content)
	assert.Equal(t, []string{"created:doc1"}, f.notifier.events)
}

func TestCommunity_CreatePostFallsBackToLocal(t *testing.T) {
	f := newCommunityFixture(true)
	f.remote.err = errStoreDown

	p, err := f.uc.CreatePost(context.Background(), 1, "hello")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.True(t, p.PendingSync)

	pending, _ := f.local.ListPendingSync(context.Background(), 10)
	assert.Len(t, pending, 1)
}

func TestCommunity_CreatePostFailsWhenNoStoreAccepts(t *testing.T) {
	f := newCommunityFixture(true)
	f.remote.err = errStoreDown
	f.local.err = errStoreDown

	_, err := f.uc.CreatePost(context.Background(), 1, "hello")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCommunity_CreatePostValidation(t *testing.T) {
	f := newCommunityFixture(false)
	_, err := f.uc.CreatePost(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.uc.CreatePost(context.Background(), 99, "hi")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCommunity_ToggleLikeTwiceRestoresCount(t *testing.T) {
	for _, withRemote := range []bool{true, false} {
		t.Run("remote="+strconv.FormatBool(withRemote), func(t *testing.T) {
			f := newCommunityFixture(withRemote)
			ctx := context.Background()
			created, err := f.uc.CreatePost(ctx, 2, "post")
			require.NoError(t, err)

			liked, err := f.uc.ToggleLike(ctx, 1, created.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, liked.Likes)
			assert.True(t, liked.LikedByMe)

			unliked, err := f.uc.ToggleLike(ctx, 1, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.Likes, unliked.Likes)
			assert.False(t, unliked.LikedByMe)
			assert.Empty(t, unliked.LikedBy)
		})
	}
}

func TestCommunity_ToggleLikeWritesBothStores(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()
	created, _ := f.uc.CreatePost(ctx, 2, "post")

	_, err := f.uc.ToggleLike(ctx, 1, created.ID)
	require.NoError(t, err)

	remote, _ := f.remote.GetPost(ctx, created.ID)
	mirror, _ := f.local.GetByRemoteID(ctx, created.ID)
	assert.Equal(t, 1, remote.Likes)
	assert.Equal(t, 1, mirror.Likes)
	assert.Equal(t, "1", mirror.LikedBy)
}

func TestCommunity_ToggleLikeUsesMirrorWhenRemoteDown(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()
	created, _ := f.uc.CreatePost(ctx, 2, "post")
	f.remote.err = errStoreDown

	liked, err := f.uc.ToggleLike(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	mirror, _ := f.local.GetByRemoteID(ctx, created.ID)
	assert.Equal(t, 1, mirror.Likes)
}

func TestCommunity_ToggleLikeErrors(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()

	_, err := f.uc.ToggleLike(ctx, 1, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.uc.ToggleLike(ctx, 1, "42")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.uc.ToggleLike(ctx, 1, "missing-doc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommunity_FeedPrefersRemoteAndMirrors(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()
	f.remote.posts["a"] = post.Post{RemoteID: "a", UserID: 2, Author: "Bob", Content: "remote", LikedBy: "1", Likes: 1, CreatedAt: fixedNow.Add(-90 * time.Second)}
	_, _ = f.local.Create(ctx, post.Post{UserID: 1, Content: "local only", CreatedAt: fixedNow})

	feed, err := f.uc.Feed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "a", feed[0].ID)
	assert.Equal(t, "1 min ago", feed[0].TimeAgo)
	assert.True(t, feed[0].LikedByMe)

	_, err = f.local.GetByRemoteID(ctx, "a")
	assert.NoError(t, err, "remote post mirrored locally")
}

func TestCommunity_FeedFallsBackToLocal(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()
	f.remote.err = errStoreDown
	_, _ = f.local.Create(ctx, post.Post{UserID: 1, Content: "local", CreatedAt: fixedNow.Add(-48 * time.Hour)})

	feed, err := f.uc.Feed(ctx, 2)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "2 days ago", feed[0].TimeAgo)
	assert.False(t, feed[0].LikedByMe)
	assert.True(t, feed[0].PendingSync)
}

func TestCommunity_FeedEmptyRemoteUsesLocal(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()
	_, _ = f.local.Create(ctx, post.Post{UserID: 1, Content: "local", CreatedAt: fixedNow})

	feed, _ := f.uc.Feed(ctx, 1)
	assert.Len(t, feed, 1)
}

func TestCommunity_FeedSwallowsStoreErrors(t *testing.T) {
	f := newCommunityFixture(true)
	f.remote.err = errStoreDown
	f.local.err = errStoreDown

	feed, err := f.uc.Feed(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestCommunity_FeedCachedUntilWrite(t *testing.T) {
	f := newCommunityFixture(false)
	ctx := context.Background()

	feed, _ := f.uc.Feed(ctx, 1)
	assert.Empty(t, feed)
	_, _ = f.local.Create(ctx, post.Post{UserID: 1, Content: "sneaky", CreatedAt: fixedNow})

	feed, _ = f.uc.Feed(ctx, 1)
	assert.Empty(t, feed, "served from cache")

	_, err := f.uc.CreatePost(ctx, 1, "visible")
	require.NoError(t, err)
	feed, _ = f.uc.Feed(ctx, 1)
	assert.Len(t, feed, 2)
}

func TestCommunity_DeletePostPermissions(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()
	created, _ := f.uc.CreatePost(ctx, 2, "post")

	assert.ErrorIs(t, f.uc.DeletePost(ctx, 1, created.ID), ErrForbidden)
	require.NoError(t, f.uc.DeletePost(ctx, 3, created.ID))

	_, err := f.remote.GetPost(ctx, created.ID)
	assert.True(t, errors.Is(err, post.ErrNotFound))
	_, err = f.local.GetByRemoteID(ctx, created.ID)
	assert.True(t, errors.Is(err, post.ErrNotFound))
}

func TestCommunity_HandleRemoteChange(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()

	f.uc.HandleRemoteChange(ctx, post.Change{Type: post.ChangeUpsert, RemoteID: "x", Post: post.Post{UserID: 2, Content: "from elsewhere", CreatedAt: fixedNow}})
	p, err := f.local.GetByRemoteID(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "from elsewhere", p.Content)

	f.uc.HandleRemoteChange(ctx, post.Change{Type: post.ChangeDelete, RemoteID: "x"})
	_, err = f.local.GetByRemoteID(ctx, "x")
	assert.ErrorIs(t, err, post.ErrNotFound)

	assert.Equal(t, []string{"updated:x", "deleted:x"}, f.notifier.events)
	assert.Equal(t, 2, f.cache.deletes)
}

func TestCommunity_PostsSyncedDropsFeedCache(t *testing.T) {
	f := newCommunityFixture(true)
	ctx := context.Background()

	_, err := f.uc.Feed(ctx, 1)
	require.NoError(t, err)
	var cached []FeedPost
	hit, _ := f.cache.GetJSON(ctx, feedCacheKey, &cached)
	require.True(t, hit)

	f.uc.PostsSynced(ctx)

	hit, _ = f.cache.GetJSON(ctx, feedCacheKey, &cached)
	assert.False(t, hit)
	assert.Equal(t, []string{"synced:"}, f.notifier.events)
}
