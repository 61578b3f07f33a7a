package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/notekit/notekit/backend/go-services/internal/note"
)

// SQLiteRepo stores notes in a SQLite notes table; tags are kept as a JSON array.
type SQLiteRepo struct {
	db   *sql.DB
	opts options
}

func NewSQLiteRepo(db *sql.DB, opts ...Option) *SQLiteRepo {
	return &SQLiteRepo{db: db, opts: buildOptions(opts)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepo) Create(ctx context.Context, n *note.Note) (*note.Note, error) {
	created := n.Clone()
	created.ID = r.opts.newID()
	created.CreatedAt = r.opts.timestamp()
	created.UpdatedAt = created.CreatedAt

	tagsJSON, err := json.Marshal(created.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, title, content, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, created.ID, created.UserID, created.Title, created.Content, string(tagsJSON), created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return created, nil
}

func (r *SQLiteRepo) Get(ctx context.Context, ownerID, id string) (*note.Note, error) {
	return r.get(ctx, r.db, ownerID, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLiteRepo) get(ctx context.Context, q queryRower, ownerID, id string) (*note.Note, error) {
	row := q.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id=? AND user_id=?`, id, ownerID)
	n, err := scanSQLiteNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepo) List(ctx context.Context, ownerID string) ([]*note.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id=?
		ORDER BY updated_at ASC, created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	items := make([]*note.Note, 0)
	for rows.Next() {
		n, err := scanSQLiteNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	// text timestamps do not always sort chronologically
	sortByUpdated(items)
	return items, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, ownerID, id string, p note.Patch) (*note.Note, error) {
	var tags any
	if p.Tags != nil {
		b, err := json.Marshal(note.CloneTags(*p.Tags))
		if err != nil {
			return nil, fmt.Errorf("encode tags: %w", err)
		}
		tags = string(b)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE notes
		SET title = COALESCE(?, title),
			content = COALESCE(?, content),
			tags = COALESCE(?, tags),
			updated_at = ?
		WHERE id=? AND user_id=?
	`, p.Title, p.Content, tags, r.opts.timestamp(), id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	n, err := r.get(ctx, tx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id=? AND user_id=?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanSQLiteNote(row rowScanner) (*note.Note, error) {
	var n note.Note
	var tagsJSON string
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &tagsJSON, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return &n, nil
}
