package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/movieshare/backend/internal/apperrors"
	"github.com/anonto42/movieshare/backend/internal/models"
	"github.com/anonto42/movieshare/backend/internal/repositories"
	"github.com/anonto42/movieshare/backend/internal/services"
	"github.com/anonto42/movieshare/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	repos *repositories.Repositories
	svc   *services.Services
}

func setup(t *testing.T) *fixture {
	t.Helper()
	repos := repositories.New(testdb.Open(t))
	return &fixture{
		repos: repos,
		svc:   services.New(zap.NewNop(), repos, nil),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := f.svc.Identity.Create(context.Background(), username, username+"@example.com", "hash")
	require.NoError(t, err)
	return user
}

func (f *fixture) post(t *testing.T, ownerID uint, title, visibility string) *models.Post {
	t.Helper()
	post, err := f.svc.Content.CreatePost(context.Background(), ownerID, title, title+" body", visibility)
	require.NoError(t, err)
	return post
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperrors.KindOf(err), err.Error())
}

func TestIdentityService(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := f.svc.Identity.Create(ctx, "alice2", "alice@example.com", "hash")
		assertKind(t, err, apperrors.KindConflict)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		_, err := f.svc.Identity.Create(ctx, "alice", "other@example.com", "hash")
		assertKind(t, err, apperrors.KindConflict)
	})

	t.Run("Find by email", func(t *testing.T) {
		found, err := f.svc.Identity.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, found.ID)

		_, err = f.svc.Identity.FindByEmail(ctx, "nobody@example.com")
		assertKind(t, err, apperrors.KindNotFound)
	})

	t.Run("Partial profile update keeps untouched fields", func(t *testing.T) {
		name, genre, bio := "Alice", "noir", "x"
		_, err := f.svc.Identity.UpdateProfile(ctx, alice.ID, models.ProfilePatch{Name: &name, FavoriteGenre: &genre})
		require.NoError(t, err)

		updated, err := f.svc.Identity.UpdateProfile(ctx, alice.ID, models.ProfilePatch{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, "noir", updated.FavoriteGenre)
		assert.Equal(t, "x", updated.Bio)
	})

	t.Run("Empty patch is a no-op", func(t *testing.T) {
		user, err := f.svc.Identity.UpdateProfile(ctx, alice.ID, models.ProfilePatch{})
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("Avatar", func(t *testing.T) {
		user, err := f.svc.Identity.SetAvatar(ctx, alice.ID, "/static/avatars/a.png")
		require.NoError(t, err)
		assert.Equal(t, "/static/avatars/a.png", user.AvatarURL)

		_, err = f.svc.Identity.SetAvatar(ctx, 9999, "/static/avatars/b.png")
		assertKind(t, err, apperrors.KindNotFound)
	})
}

func TestContentService(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	t.Run("Visibility defaults to public", func(t *testing.T) {
		post := f.post(t, alice.ID, "Default", "")
		assert.Equal(t, models.VisibilityPublic, post.Visibility)
	})

	private := f.post(t, alice.ID, "Secret", models.VisibilityPrivate)

	t.Run("Private posts stay out of the public listing", func(t *testing.T) {
		posts, err := f.svc.Content.ListPosts(ctx, models.PostFilter{})
		require.NoError(t, err)
		for _, p := range posts {
			assert.Equal(t, models.VisibilityPublic, p.Visibility)
			assert.NotEqual(t, private.ID, p.ID)
		}

		owned, err := f.svc.Content.ListOwnedPosts(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, owned, 2)
	})

	t.Run("Only the owner may update", func(t *testing.T) {
		_, err := f.svc.Content.UpdatePost(ctx, private.ID, bob.ID, "x", "y")
		assertKind(t, err, apperrors.KindForbidden)

		updated, err := f.svc.Content.UpdatePost(ctx, private.ID, alice.ID, "x", "y")
		require.NoError(t, err)
		assert.Equal(t, "x", updated.Title)

		_, err = f.svc.Content.UpdatePost(ctx, 9999, alice.ID, "x", "y")
		assertKind(t, err, apperrors.KindNotFound)
	})

	t.Run("Comments are listed oldest first", func(t *testing.T) {
		post := f.post(t, alice.ID, "Talk", "")
		for _, c := range []string{"one", "two", "three"} {
			_, err := f.svc.Content.AddComment(ctx, post.ID, bob.ID, c)
			require.NoError(t, err)
		}

		comments, err := f.svc.Content.ListComments(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, "one", comments[0].Content)
		assert.Equal(t, "three", comments[2].Content)

		_, err = f.svc.Content.ListComments(ctx, 9999)
		assertKind(t, err, apperrors.KindNotFound)
	})

	t.Run("Comment on missing post", func(t *testing.T) {
		_, err := f.svc.Content.AddComment(ctx, 9999, bob.ID, "hi")
		assertKind(t, err, apperrors.KindNotFound)
	})
}

func TestSelfCommentsDoNotNotify(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	post := f.post(t, alice.ID, "Monologue", "")

	_, err := f.svc.Content.AddComment(ctx, post.ID, alice.ID, "talking to myself")
	require.NoError(t, err)

	comments, err := f.svc.Content.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	notifications, err := f.svc.Engagement.ListNotifications(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	unread, err := f.svc.Engagement.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNormalizeFilter(t *testing.T) {
	f := services.NormalizeFilter(models.PostFilter{Limit: 0, Offset: -3, Sort: "sideways"})
	assert.Equal(t, services.DefaultPageSize, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, models.SortNewest, f.Sort)

	f = services.NormalizeFilter(models.PostFilter{Limit: 1000, Sort: models.SortOldest})
	assert.Equal(t, services.MaxPageSize, f.Limit)
	assert.Equal(t, models.SortOldest, f.Sort)
}

func TestPagination(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	for _, title := range []string{"first", "second", "third"} {
		f.post(t, alice.ID, title, "")
	}

	all, err := f.svc.Content.ListPosts(ctx, models.PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	page, err := f.svc.Content.ListPosts(ctx, models.PostFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, all[1].ID, page[0].ID)

	empty, err := f.svc.Content.ListPosts(ctx, models.PostFilter{Offset: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	post := f.post(t, alice.ID, "Heat", "")

	t.Run("Alternates", func(t *testing.T) {
		for i, want := range []bool{true, false, true, false} {
			liked, err := f.svc.Engagement.ToggleLike(ctx, post.ID, bob.ID)
			require.NoError(t, err)
			assert.Equal(t, want, liked, "toggle %d", i)
		}
		count, err := f.repos.Likes.GetLikesCountByPostID(ctx, post.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Only liking notifies", func(t *testing.T) {
		notifications, err := f.svc.Engagement.ListNotifications(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, notifications, 2)
		for _, n := range notifications {
			assert.Equal(t, models.NotificationLike, n.Type)
			assert.Equal(t, post.ID, n.PostID)
		}
	})

	t.Run("Self likes do not notify", func(t *testing.T) {
		liked, err := f.svc.Engagement.ToggleLike(ctx, post.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		notifications, err := f.svc.Engagement.ListNotifications(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, notifications, 2)
	})

	t.Run("Missing post", func(t *testing.T) {
		_, err := f.svc.Engagement.ToggleLike(ctx, 9999, bob.ID)
		assertKind(t, err, apperrors.KindNotFound)
	})
}

func TestConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	post := f.post(t, alice.ID, "Race", "")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.svc.Engagement.ToggleLike(ctx, post.ID, bob.ID)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := f.svc.Engagement.ToggleBookmark(ctx, post.ID, bob.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	likes, err := f.repos.Likes.GetLikesCountByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, likes, int64(1))

	bookmarks, err := f.svc.Engagement.ListBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(bookmarks), 1)
}

func TestBookmarks(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	older := f.post(t, alice.ID, "Older", "")
	newer := f.post(t, alice.ID, "Newer", "")

	for _, id := range []uint{older.ID, newer.ID} {
		bookmarked, err := f.svc.Engagement.ToggleBookmark(ctx, id, bob.ID)
		require.NoError(t, err)
		assert.True(t, bookmarked)
	}

	is, err := f.svc.Engagement.IsBookmarked(ctx, older.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, is)

	posts, err := f.svc.Engagement.ListBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)

	bookmarked, err := f.svc.Engagement.ToggleBookmark(ctx, older.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	// bookmarks never notify
	notifications, err := f.svc.Engagement.ListNotifications(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	_, err = f.svc.Engagement.IsBookmarked(ctx, 9999, bob.ID)
	assertKind(t, err, apperrors.KindNotFound)
}

func TestMarkSeen(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	post := f.post(t, alice.ID, "Heat", "")

	_, err := f.svc.Content.AddComment(ctx, post.ID, bob.ID, "great")
	require.NoError(t, err)

	notifications, err := f.svc.Engagement.ListNotifications(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, models.NotificationComment, n.Type)
	assert.False(t, n.Seen)

	unread, err := f.svc.Engagement.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	_, err = f.svc.Engagement.MarkSeen(ctx, n.ID, bob.ID)
	assertKind(t, err, apperrors.KindForbidden)

	_, err = f.svc.Engagement.MarkSeen(ctx, 9999, alice.ID)
	assertKind(t, err, apperrors.KindNotFound)

	for i := 0; i < 2; i++ {
		seen, err := f.svc.Engagement.MarkSeen(ctx, n.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, seen.Seen)
	}

	unread, err = f.svc.Engagement.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestDeletePostCascades(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	post := f.post(t, alice.ID, "Doomed", "")

	_, err := f.svc.Engagement.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.svc.Engagement.ToggleBookmark(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.svc.Content.AddComment(ctx, post.ID, bob.ID, "bye")
	require.NoError(t, err)

	assertKind(t, f.svc.Content.DeletePost(ctx, post.ID, bob.ID), apperrors.KindForbidden)
	require.NoError(t, f.svc.Content.DeletePost(ctx, post.ID, alice.ID))

	_, err = f.svc.Content.GetPost(ctx, post.ID)
	assertKind(t, err, apperrors.KindNotFound)

	bookmarks, err := f.svc.Engagement.ListBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)

	notifications, err := f.svc.Engagement.ListNotifications(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	likes, err := f.repos.Likes.GetLikesCountByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, likes)

	assertKind(t, f.svc.Content.DeletePost(ctx, post.ID, alice.ID), apperrors.KindNotFound)
}

// Alice posts, Bob likes and comments, Alice reads and clears her notifications.
func TestEngagementScenario(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	post := f.post(t, alice.ID, "Heat (1995)", "")

	liked, err := f.svc.Engagement.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	_, err = f.svc.Content.AddComment(ctx, post.ID, bob.ID, "classic")
	require.NoError(t, err)

	fetched, err := f.svc.Content.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fetched.LikeCount)

	notifications, err := f.svc.Engagement.ListNotifications(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotificationComment, notifications[0].Type)
	assert.Equal(t, models.NotificationLike, notifications[1].Type)

	for _, n := range notifications {
		_, err := f.svc.Engagement.MarkSeen(ctx, n.ID, alice.ID)
		require.NoError(t, err)
	}
	unread, err := f.svc.Engagement.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	bobs, err := f.svc.Engagement.ListNotifications(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobs)
}
