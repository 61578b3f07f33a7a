package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/notekit/notekit/backend/go-services/internal/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func strPtr(s string) *string { return &s }

// runRepositoryContract exercises the behaviour every backend must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T, opts ...Option) Repository) {
	ctx := context.Background()

	t.Run("CreateAssignsIDAndTimestamps", func(t *testing.T) {
		r := newRepo(t, WithClock(tickingClock()))
		created, err := r.Create(ctx, &note.Note{ID: "caller-chosen", UserID: "alice", Title: "first", Tags: []string{}})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.NotEqual(t, "caller-chosen", created.ID)
		require.Equal(t, "alice", created.UserID)
		require.False(t, created.CreatedAt.IsZero())
		require.True(t, created.CreatedAt.Equal(created.UpdatedAt))
		require.NotNil(t, created.Tags)

		got, err := r.Get(ctx, "alice", created.ID)
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
		require.Equal(t, "first", got.Title)
		require.Equal(t, "", got.Content)
		require.Equal(t, []string{}, got.Tags)
	})

	t.Run("TagsKeepOrderAndDuplicates", func(t *testing.T) {
		r := newRepo(t, WithClock(tickingClock()))
		created, err := r.Create(ctx, &note.Note{UserID: "alice", Title: "tags", Tags: []string{"go", "db", "go"}})
		require.NoError(t, err)
		got, err := r.Get(ctx, "alice", created.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"go", "db", "go"}, got.Tags)
	})

	t.Run("OwnerIsolation", func(t *testing.T) {
		r := newRepo(t, WithClock(tickingClock()))
		created, err := r.Create(ctx, &note.Note{UserID: "alice", Title: "private", Tags: []string{}})
		require.NoError(t, err)

		_, err = r.Get(ctx, "mallory", created.ID)
		require.ErrorIs(t, err, ErrNotFound)

		_, err = r.Update(ctx, "mallory", created.ID, note.Patch{Title: strPtr("pwned")})
		require.ErrorIs(t, err, ErrNotFound)

		require.ErrorIs(t, r.Delete(ctx, "mallory", created.ID), ErrNotFound)

		list, err := r.List(ctx, "mallory")
		require.NoError(t, err)
		require.Empty(t, list)

		got, err := r.Get(ctx, "alice", created.ID)
		require.NoError(t, err)
		require.Equal(t, "private", got.Title)
	})

	t.Run("MissingNote", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Get(ctx, "alice", "does-not-exist")
		require.ErrorIs(t, err, ErrNotFound)
		_, err = r.Update(ctx, "alice", "does-not-exist", note.Patch{})
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, r.Delete(ctx, "alice", "does-not-exist"), ErrNotFound)
	})

	t.Run("TagsOnlyUpdateKeepsOtherFields", func(t *testing.T) {
		r := newRepo(t, WithClock(tickingClock()))
		created, err := r.Create(ctx, &note.Note{UserID: "alice", Title: "title", Content: "<p>body</p>", Tags: []string{"a"}})
		require.NoError(t, err)

		tags := []string{"x", "y"}
		updated, err := r.Update(ctx, "alice", created.ID, note.Patch{Tags: &tags})
		require.NoError(t, err)
		assert.Equal(t, "title", updated.Title)
		assert.Equal(t, "<p>body</p>", updated.Content)
		assert.Equal(t, []string{"x", "y"}, updated.Tags)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

		empty := []string{}
		cleared, err := r.Update(ctx, "alice", created.ID, note.Patch{Tags: &empty})
		require.NoError(t, err)
		assert.Equal(t, []string{}, cleared.Tags)
		assert.Equal(t, "title", cleared.Title)
	})

	t.Run("EmptyPatchRefreshesUpdatedAt", func(t *testing.T) {
		r := newRepo(t, WithClock(tickingClock()))
		created, err := r.Create(ctx, &note.Note{UserID: "alice", Title: "t", Tags: []string{}})
		require.NoError(t, err)
		updated, err := r.Update(ctx, "alice", created.ID, note.Patch{})
		require.NoError(t, err)
		require.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("ListOrdersOldestUpdatedFirst", func(t *testing.T) {
		r := newRepo(t, WithClock(tickingClock()))
		var ids []string
		for _, title := range []string{"one", "two", "three"} {
			n, err := r.Create(ctx, &note.Note{UserID: "alice", Title: title, Tags: []string{}})
			require.NoError(t, err)
			ids = append(ids, n.ID)
		}
		_, err := r.Create(ctx, &note.Note{UserID: "bob", Title: "other", Tags: []string{}})
		require.NoError(t, err)

		list, err := r.List(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, ids, []string{list[0].ID, list[1].ID, list[2].ID})

		// touching the first note moves it to the end
		_, err = r.Update(ctx, "alice", ids[0], note.Patch{Content: strPtr("edited")})
		require.NoError(t, err)
		list, err = r.List(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, []string{ids[1], ids[2], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("DeleteIsHard", func(t *testing.T) {
		r := newRepo(t, WithClock(tickingClock()))
		created, err := r.Create(ctx, &note.Note{UserID: "alice", Title: "gone", Tags: []string{}})
		require.NoError(t, err)
		require.NoError(t, r.Delete(ctx, "alice", created.ID))
		_, err = r.Get(ctx, "alice", created.ID)
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, r.Delete(ctx, "alice", created.ID), ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, newRepo(t).Ping(ctx))
	})
}
