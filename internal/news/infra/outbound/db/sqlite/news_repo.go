package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/davicafu/hexanews/internal/news/domain"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

// NewsRepoSQLite implementa la interfaz domain.NewsRepository.
type NewsRepoSQLite struct {
	db *sql.DB
}

func NewNewsRepoSQLite(db *sql.DB) *NewsRepoSQLite {
	return &NewsRepoSQLite{db: db}
}

// InitSchema crea la tabla del módulo si no existe.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS news_articles (
			id                TEXT PRIMARY KEY,
			headline          TEXT NOT NULL,
			date_published    DATETIME NOT NULL,
			author_id         TEXT NOT NULL,
			image_url         TEXT NOT NULL DEFAULT '',
			image_description TEXT NOT NULL DEFAULT '',
			image_author      TEXT NOT NULL DEFAULT '',
			text              TEXT NOT NULL DEFAULT '',
			revoke_reason     TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("failed to create news_articles table: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *NewsRepoSQLite) conn(ctx context.Context) execer {
	if t := tx.From(ctx); t != nil {
		return t
	}
	return r.db
}

func (r *NewsRepoSQLite) Upsert(ctx context.Context, a *domain.NewsArticle) error {
	_, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO news_articles (id, headline, date_published, author_id,
		                            image_url, image_description, image_author,
		                            text, revoke_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     headline = excluded.headline,
		     date_published = excluded.date_published,
		     author_id = excluded.author_id,
		     image_url = excluded.image_url,
		     image_description = excluded.image_description,
		     image_author = excluded.image_author,
		     text = excluded.text,
		     revoke_reason = excluded.revoke_reason`,
		a.ID.String(), a.Headline, a.DatePublished, a.AuthorID.String(),
		a.Image.URL, a.Image.Description, a.Image.Author, a.Text, a.RevokeReason,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert news article: %w", err)
	}
	return nil
}

const newsColumns = `id, headline, date_published, author_id,
	image_url, image_description, image_author, text, revoke_reason`

func (r *NewsRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*domain.NewsArticle, error) {
	row := r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news_articles WHERE id = ?`, id.String())

	a, err := scanArticle(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNewsNotFound
	}
	return a, err
}

func (r *NewsRepoSQLite) List(ctx context.Context, limit, offset int) ([]*domain.NewsArticle, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT `+newsColumns+` FROM news_articles
		 WHERE revoke_reason = ''
		 ORDER BY date_published DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*domain.NewsArticle
	for rows.Next() {
		a, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func scanArticle(scan func(dest ...any) error) (*domain.NewsArticle, error) {
	var (
		idStr       string
		published   time.Time
		authorIDStr string
		a           domain.NewsArticle
	)
	err := scan(&idStr, &a.Headline, &published, &authorIDStr,
		&a.Image.URL, &a.Image.Description, &a.Image.Author, &a.Text, &a.RevokeReason)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in news_articles row: %w", err)
	}
	a.ID = id

	authorID, err := uuid.Parse(authorIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid author UUID in news_articles row: %w", err)
	}
	a.AuthorID = authorID
	a.DatePublished = published
	return &a, nil
}

// Verificación en tiempo de compilación.
var _ domain.NewsRepository = (*NewsRepoSQLite)(nil)
