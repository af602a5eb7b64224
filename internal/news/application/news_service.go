package application

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	draftDomain "github.com/davicafu/hexanews/internal/draft/domain"
	"github.com/davicafu/hexanews/internal/news/domain"
	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

// NewsService define los casos de uso sobre noticias publicadas.
type NewsService struct {
	repo  domain.NewsRepository
	store sharedEvents.Store
	txm   tx.Manager
	log   *zap.Logger
}

// NewNewsService constructor
func NewNewsService(repo domain.NewsRepository, store sharedEvents.Store, txm tx.Manager, log *zap.Logger) *NewsService {
	return &NewsService{repo: repo, store: store, txm: txm, log: log}
}

func (s *NewsService) ListNews(ctx context.Context, limit, offset int) ([]*domain.NewsArticle, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *NewsService) GetNews(ctx context.Context, id uuid.UUID) (*domain.NewsArticle, error) {
	return s.repo.GetByID(ctx, id)
}

// RevokeNews retira la noticia y deja registrado news.revoked en la
// misma transacción.
func (s *NewsService) RevokeNews(ctx context.Context, id uuid.UUID, reason string) (*domain.NewsArticle, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrEmptyRevokeReason
	}

	var revoked *domain.NewsArticle
	err := s.txm.InTransaction(ctx, func(ctx context.Context) error {
		article, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if article.IsRevoked() {
			return domain.ErrNewsAlreadyRevoked
		}

		article.Revoke(reason)
		if err := s.repo.Upsert(ctx, article); err != nil {
			return err
		}

		evt := domain.NewNewsRevoked(article.ID.String(), reason)
		if err := s.store.Append(ctx, evt); err != nil {
			return err
		}
		if err := sharedEvents.Emit(ctx, evt); err != nil {
			return err
		}

		revoked = article
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revoked, nil
}

// PublishArticle crea o actualiza la noticia que corresponde a un
// borrador publicado. Corre dentro de la transacción del borrador.
func (s *NewsService) PublishArticle(ctx context.Context, a draftDomain.PublishedArticle) (uuid.UUID, error) {
	article := &domain.NewsArticle{
		Headline:      a.Headline,
		DatePublished: a.DatePublished,
		AuthorID:      a.AuthorID,
		Image:         a.Image,
		Text:          a.Text,
	}

	if a.ArticleID != nil {
		// Edición de una noticia existente: conservamos identidad y
		// fecha de publicación original si la hay.
		existing, err := s.repo.GetByID(ctx, *a.ArticleID)
		if err != nil {
			return uuid.Nil, err
		}
		article.ID = existing.ID
		article.DatePublished = existing.DatePublished
	} else {
		article.ID = uuid.New()
	}

	if err := s.repo.Upsert(ctx, article); err != nil {
		return uuid.Nil, err
	}
	return article.ID, nil
}

// Verificación estática
var _ draftDomain.ArticlePublisher = (*NewsService)(nil)
