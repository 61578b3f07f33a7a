package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/notekit/notekit/backend/go-services/internal/note"
)

const noteColumns = `id, user_id, title, content, tags, created_at, updated_at`

// PostgresRepo stores notes in the notes table using a pgx pool.
type PostgresRepo struct {
	pool *pgxpool.Pool
	opts options
}

func NewPostgresRepo(pool *pgxpool.Pool, opts ...Option) *PostgresRepo {
	return &PostgresRepo{pool: pool, opts: buildOptions(opts)}
}

func (r *PostgresRepo) Create(ctx context.Context, n *note.Note) (*note.Note, error) {
	now := r.opts.timestamp()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notes (id, user_id, title, content, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING `+noteColumns,
		r.opts.newID(), n.UserID, n.Title, n.Content, note.CloneTags(n.Tags), now)
	created, err := scanPgNote(row)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return created, nil
}

func (r *PostgresRepo) Get(ctx context.Context, ownerID, id string) (*note.Note, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id=$1 AND user_id=$2`, id, ownerID)
	n, err := scanPgNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *PostgresRepo) List(ctx context.Context, ownerID string) ([]*note.Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id=$1
		ORDER BY updated_at ASC, created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	items := make([]*note.Note, 0)
	for rows.Next() {
		n, err := scanPgNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return items, nil
}

func (r *PostgresRepo) Update(ctx context.Context, ownerID, id string, p note.Patch) (*note.Note, error) {
	var tags any
	if p.Tags != nil {
		tags = note.CloneTags(*p.Tags)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE notes
		SET title = COALESCE($3, title),
			content = COALESCE($4, content),
			tags = COALESCE($5::text[], tags),
			updated_at = $6
		WHERE id=$1 AND user_id=$2
		RETURNING `+noteColumns,
		id, ownerID, p.Title, p.Content, tags, r.opts.timestamp())
	n, err := scanPgNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanPgNote(row pgx.Row) (*note.Note, error) {
	var n note.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Tags, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return &n, nil
}
