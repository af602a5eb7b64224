package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/hexanews/internal/author/domain"
	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

// AuthorService define los casos de uso relacionados con Author.
type AuthorService struct {
	repo  domain.AuthorRepository
	cache domain.AuthorCache
	store sharedEvents.Store
	txm   tx.Manager
	log   *zap.Logger
}

// NewAuthorService constructor
func NewAuthorService(repo domain.AuthorRepository, cache domain.AuthorCache, store sharedEvents.Store, txm tx.Manager, log *zap.Logger) *AuthorService {
	return &AuthorService{
		repo:  repo,
		cache: cache,
		store: store,
		txm:   txm,
		log:   log,
	}
}

func (s *AuthorService) CreateAuthor(ctx context.Context, name string) (*domain.Author, error) {
	author, err := domain.NewAuthor(name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func(a *domain.Author) {
			ctxCache, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = s.cache.Set(ctxCache, domain.CacheKeyByID(a.ID), a, 60)
		}(author)
	}

	return author, nil
}

func (s *AuthorService) UpdateAuthor(ctx context.Context, id uuid.UUID, name string) (*domain.Author, error) {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := author.Rename(name); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, author); err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func(a *domain.Author) { _ = s.cache.Set(context.Background(), domain.CacheKeyByID(a.ID), a, 60) }(author)
	}

	return author, nil
}

// DeleteAuthor borra el autor y deja registrado author.deleted en la
// misma transacción: el evento solo existe si el borrado hizo commit.
// Los handlers locales (cascada sobre borradores) corren tras el commit.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	err := s.txm.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			return err
		}

		evt := domain.NewAuthorDeleted(id.String())
		if err := s.store.Append(ctx, evt); err != nil {
			return err
		}
		return sharedEvents.Emit(ctx, evt)
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		go func(aid uuid.UUID) { _ = s.cache.Delete(context.Background(), domain.CacheKeyByID(aid)) }(id)
	}

	return nil
}

// GetAuthor obtiene un autor (primero intenta desde cache).
func (s *AuthorService) GetAuthor(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	if s.cache != nil {
		var a domain.Author
		if ok, _ := s.cache.Get(ctx, domain.CacheKeyByID(id), &a); ok {
			return &a, nil
		}
	}

	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func(a *domain.Author) {
			ctxCache, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			if err := s.cache.Set(ctxCache, domain.CacheKeyByID(a.ID), a, 60); err != nil {
				s.log.Warn("⚠️ Cache update failed for author", zap.String("author_id", a.ID.String()), zap.Error(err))
			}
		}(author)
	}

	return author, nil
}

// ListAuthors devuelve autores paginados por offset.
func (s *AuthorService) ListAuthors(ctx context.Context, limit, offset int) ([]*domain.Author, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}

// DefaultAuthor devuelve el autor por defecto configurado para el usuario,
// o nil si no hay ninguno.
func (s *AuthorService) DefaultAuthor(ctx context.Context, userID string) (*domain.Author, error) {
	authorID, err := s.repo.DefaultAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if authorID == nil {
		return nil, nil
	}
	return s.GetAuthor(ctx, *authorID)
}

// SetDefaultAuthor fija (o limpia, con nil) el autor por defecto del usuario.
func (s *AuthorService) SetDefaultAuthor(ctx context.Context, userID string, authorID *uuid.UUID) error {
	if authorID != nil {
		if _, err := s.repo.GetByID(ctx, *authorID); err != nil {
			return err
		}
	}
	return s.repo.SetDefaultAuthor(ctx, userID, authorID)
}
