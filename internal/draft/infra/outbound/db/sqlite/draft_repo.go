package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/davicafu/hexanews/internal/draft/domain"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

// DraftRepoSQLite implementa la interfaz domain.DraftRepository.
type DraftRepoSQLite struct {
	db *sql.DB
}

func NewDraftRepoSQLite(db *sql.DB) *DraftRepoSQLite {
	return &DraftRepoSQLite{db: db}
}

// InitSchema crea la tabla del módulo si no existe.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS drafts (
			id                 TEXT PRIMARY KEY,
			news_article_id    TEXT,
			headline           TEXT NOT NULL DEFAULT '',
			date_published     DATETIME,
			author_id          TEXT NOT NULL,
			image_url          TEXT NOT NULL DEFAULT '',
			image_description  TEXT NOT NULL DEFAULT '',
			image_author       TEXT NOT NULL DEFAULT '',
			text               TEXT NOT NULL DEFAULT '',
			created_by_user_id TEXT NOT NULL,
			is_published       BOOLEAN NOT NULL DEFAULT 0
		)`)
	if err != nil {
		return fmt.Errorf("failed to create drafts table: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *DraftRepoSQLite) conn(ctx context.Context) execer {
	if t := tx.From(ctx); t != nil {
		return t
	}
	return r.db
}

func (r *DraftRepoSQLite) Create(ctx context.Context, d *domain.Draft) error {
	_, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO drafts (id, news_article_id, headline, date_published, author_id,
		                     image_url, image_description, image_author, text,
		                     created_by_user_id, is_published)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID.String(), nullableID(d.NewsArticleID), d.Headline, d.DatePublished,
		d.AuthorID.String(), d.Image.URL, d.Image.Description, d.Image.Author,
		d.Text, d.CreatedByUserID, d.IsPublished,
	)
	if err != nil {
		return fmt.Errorf("failed to insert draft: %w", err)
	}
	return nil
}

const draftColumns = `id, news_article_id, headline, date_published, author_id,
	image_url, image_description, image_author, text, created_by_user_id, is_published`

func (r *DraftRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	row := r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = ?`, id.String())

	d, err := scanDraft(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDraftNotFound
	}
	return d, err
}

func (r *DraftRepoSQLite) Update(ctx context.Context, d *domain.Draft) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE drafts
		 SET news_article_id = ?, headline = ?, date_published = ?,
		     image_url = ?, image_description = ?, image_author = ?,
		     text = ?, is_published = ?
		 WHERE id = ?`,
		nullableID(d.NewsArticleID), d.Headline, d.DatePublished,
		d.Image.URL, d.Image.Description, d.Image.Author,
		d.Text, d.IsPublished, d.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return domain.ErrDraftNotFound
	}
	return nil
}

func (r *DraftRepoSQLite) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return domain.ErrDraftNotFound
	}
	return nil
}

func (r *DraftRepoSQLite) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Draft, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE author_id = ? ORDER BY rowid DESC`,
		authorID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []*domain.Draft
	for rows.Next() {
		d, err := scanDraft(rows.Scan)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func (r *DraftRepoSQLite) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	_, err := r.conn(ctx).ExecContext(ctx,
		`DELETE FROM drafts WHERE author_id = ?`, authorID.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ---------- helpers ----------

func nullableID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func scanDraft(scan func(dest ...any) error) (*domain.Draft, error) {
	var (
		idStr         string
		newsArticleID sql.NullString
		datePublished sql.NullTime
		authorIDStr   string
		d             domain.Draft
	)
	err := scan(&idStr, &newsArticleID, &d.Headline, &datePublished, &authorIDStr,
		&d.Image.URL, &d.Image.Description, &d.Image.Author, &d.Text,
		&d.CreatedByUserID, &d.IsPublished)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in drafts row: %w", err)
	}
	d.ID = id

	authorID, err := uuid.Parse(authorIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid author UUID in drafts row: %w", err)
	}
	d.AuthorID = authorID

	if newsArticleID.Valid {
		parsed, err := uuid.Parse(newsArticleID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid news article UUID in drafts row: %w", err)
		}
		d.NewsArticleID = &parsed
	}
	if datePublished.Valid {
		t := datePublished.Time
		d.DatePublished = &t
	}
	return &d, nil
}

// Verificación en tiempo de compilación.
var _ domain.DraftRepository = (*DraftRepoSQLite)(nil)
