package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/notekit/notekit/backend/go-services/internal/note"
)

var (
	// ErrNotFound is returned when no note matches both id and owner.
	ErrNotFound = errors.New("note not found")
)

// Repository persists notes. Every method except Create is scoped by owner.
type Repository interface {
	Create(ctx context.Context, n *note.Note) (*note.Note, error)
	Get(ctx context.Context, ownerID, id string) (*note.Note, error)
	List(ctx context.Context, ownerID string) ([]*note.Note, error)
	Update(ctx context.Context, ownerID, id string, p note.Patch) (*note.Note, error)
	Delete(ctx context.Context, ownerID, id string) error
	Ping(ctx context.Context) error
}

// Option configures a repository.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) { o.newID = gen }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o options) timestamp() time.Time {
	return o.now().UTC()
}

// sortByUpdated orders oldest-updated first; ties fall back to createdAt, then id.
func sortByUpdated(notes []*note.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
