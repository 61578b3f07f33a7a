package repository

import (
	"context"
	"testing"

	"github.com/notekit/notekit/backend/go-services/internal/note"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoContract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T, opts ...Option) Repository {
		return NewMemoryRepo(opts...)
	})
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	created, err := r.Create(ctx, &note.Note{UserID: "alice", Title: "t", Tags: []string{"a"}})
	require.NoError(t, err)

	created.Title = "mutated"
	created.Tags[0] = "mutated"

	got, err := r.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	require.Equal(t, "t", got.Title)
	require.Equal(t, []string{"a"}, got.Tags)
}

func TestMemoryRepoRetriesIDCollision(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	r := NewMemoryRepo(WithIDGenerator(gen))
	ctx := context.Background()

	first, err := r.Create(ctx, &note.Note{UserID: "alice", Title: "a"})
	require.NoError(t, err)
	second, err := r.Create(ctx, &note.Note{UserID: "alice", Title: "b"})
	require.NoError(t, err)
	require.Equal(t, "dup", first.ID)
	require.Equal(t, "fresh", second.ID)
}
