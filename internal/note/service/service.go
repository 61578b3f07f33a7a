package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/notekit/notekit/backend/go-services/internal/apperr"
	"github.com/notekit/notekit/backend/go-services/internal/note"
	"github.com/notekit/notekit/backend/go-services/internal/note/repository"
	"github.com/notekit/notekit/backend/go-services/pkg/logger"
	"github.com/notekit/notekit/backend/go-services/pkg/metrics"
)

const notFoundMessage = "Note not found"

// CreateInput is the caller-supplied part of a new note.
type CreateInput struct {
	Title   string
	Content string
	Tags    []string
}

// Service defines the note operations used by the handler layer.
// Every method is scoped to ownerID.
type Service interface {
	List(ctx context.Context, ownerID string) ([]*note.Note, error)
	Get(ctx context.Context, ownerID, id string) (*note.Note, error)
	Create(ctx context.Context, ownerID string, in CreateInput) (*note.Note, error)
	Update(ctx context.Context, ownerID, id string, p note.Patch) (*note.Note, error)
	Delete(ctx context.Context, ownerID, id string) error
	Ping(ctx context.Context) error
}

// New returns a Service backed by repo.
func New(repo repository.Repository) Service {
	return &noteService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(opts ...repository.Option) Service {
	return New(repository.NewMemoryRepo(opts...))
}

type noteService struct {
	repo repository.Repository
}

func (s *noteService) List(ctx context.Context, ownerID string) ([]*note.Note, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, storeError("list", err)
	}
	return list, nil
}

func (s *noteService) Get(ctx context.Context, ownerID, id string) (*note.Note, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	n, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, storeError("get", err)
	}
	return n, nil
}

func (s *noteService) Create(ctx context.Context, ownerID string, in CreateInput) (*note.Note, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if fe, ok := ValidateTitle(in.Title); !ok {
		return nil, apperr.Validation("Invalid request data", fe)
	}
	n, err := s.repo.Create(ctx, &note.Note{
		UserID:  ownerID,
		Title:   in.Title,
		Content: in.Content,
		Tags:    note.CloneTags(in.Tags),
	})
	if err != nil {
		return nil, storeError("create", err)
	}
	return n, nil
}

func (s *noteService) Update(ctx context.Context, ownerID, id string, p note.Patch) (*note.Note, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if p.Title != nil {
		if fe, ok := ValidateTitle(*p.Title); !ok {
			return nil, apperr.Validation("Invalid request data", fe)
		}
	}
	n, err := s.repo.Update(ctx, ownerID, id, p)
	if err != nil {
		return nil, storeError("update", err)
	}
	return n, nil
}

func (s *noteService) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return storeError("delete", err)
	}
	return nil
}

func (s *noteService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ValidateTitle enforces 1..MaxTitleLength code points; blank titles are rejected.
func ValidateTitle(title string) (apperr.FieldError, bool) {
	if strings.TrimSpace(title) == "" {
		return apperr.FieldError{Field: "title", Message: "Title is required"}, false
	}
	if utf8.RuneCountInString(title) > note.MaxTitleLength {
		return apperr.FieldError{Field: "title", Message: "Title must be at most 200 characters"}, false
	}
	return apperr.FieldError{}, true
}

func requireOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperr.Unauthorized()
	}
	return nil
}

func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFoundMessage)
	}
	metrics.StoreErrors.WithLabelValues(op).Inc()
	logger.Errorf("note store %s failed: %v", op, err)
	return apperr.Internal("note store "+op+" failed", err)
}
