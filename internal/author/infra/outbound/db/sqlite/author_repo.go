package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/davicafu/hexanews/internal/author/domain"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

// AuthorRepoSQLite implementa la interfaz domain.AuthorRepository.
type AuthorRepoSQLite struct {
	db *sql.DB
}

func NewAuthorRepoSQLite(db *sql.DB) *AuthorRepoSQLite {
	return &AuthorRepoSQLite{db: db}
}

// InitSchema crea las tablas del módulo si no existen.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS authors (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE TABLE IF NOT EXISTS default_authors (
			user_id   TEXT PRIMARY KEY,
			author_id TEXT
		);`)
	if err != nil {
		return fmt.Errorf("failed to create author tables: %w", err)
	}
	return nil
}

// execer abstrae *sql.DB y *sql.Tx para sumarse a la transacción del contexto.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *AuthorRepoSQLite) conn(ctx context.Context) execer {
	if t := tx.From(ctx); t != nil {
		return t
	}
	return r.db
}

func (r *AuthorRepoSQLite) Create(ctx context.Context, a *domain.Author) error {
	_, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO authors (id, name, created_at) VALUES (?, ?, ?)`,
		a.ID.String(), a.Name, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert author: %w", err)
	}
	return nil
}

func (r *AuthorRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	var (
		idStr     string
		name      string
		createdAt time.Time
	)
	err := r.conn(ctx).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM authors WHERE id = ?`, id.String(),
	).Scan(&idStr, &name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAuthorNotFound
	}
	if err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in authors row: %w", err)
	}
	return &domain.Author{ID: parsedID, Name: name, CreatedAt: createdAt}, nil
}

func (r *AuthorRepoSQLite) Update(ctx context.Context, a *domain.Author) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE authors SET name = ? WHERE id = ?`, a.Name, a.ID.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAuthorNotFound
	}
	return nil
}

// DeleteByID borra el autor y limpia las referencias de autor por defecto
// que apuntaban a él, todo dentro de la transacción del contexto.
func (r *AuthorRepoSQLite) DeleteByID(ctx context.Context, id uuid.UUID) error {
	conn := r.conn(ctx)

	res, err := conn.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAuthorNotFound
	}

	if _, err := conn.ExecContext(ctx,
		`UPDATE default_authors SET author_id = NULL WHERE author_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to clear default authors: %w", err)
	}
	return nil
}

func (r *AuthorRepoSQLite) List(ctx context.Context, limit, offset int) ([]*domain.Author, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM authors ORDER BY name LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*domain.Author
	for rows.Next() {
		var (
			idStr     string
			name      string
			createdAt time.Time
		)
		if err := rows.Scan(&idStr, &name, &createdAt); err != nil {
			return nil, err
		}
		parsedID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in authors row: %w", err)
		}
		authors = append(authors, &domain.Author{ID: parsedID, Name: name, CreatedAt: createdAt})
	}
	return authors, rows.Err()
}

func (r *AuthorRepoSQLite) DefaultAuthor(ctx context.Context, userID string) (*uuid.UUID, error) {
	var authorID sql.NullString
	err := r.conn(ctx).QueryRowContext(ctx,
		`SELECT author_id FROM default_authors WHERE user_id = ?`, userID,
	).Scan(&authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !authorID.Valid {
		return nil, nil
	}

	parsed, err := uuid.Parse(authorID.String)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in default_authors row: %w", err)
	}
	return &parsed, nil
}

func (r *AuthorRepoSQLite) SetDefaultAuthor(ctx context.Context, userID string, authorID *uuid.UUID) error {
	var val any
	if authorID != nil {
		val = authorID.String()
	}
	_, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO default_authors (user_id, author_id) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET author_id = excluded.author_id`,
		userID, val,
	)
	if err != nil {
		return fmt.Errorf("failed to set default author: %w", err)
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ domain.AuthorRepository = (*AuthorRepoSQLite)(nil)
