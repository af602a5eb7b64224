package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	authorDomain "github.com/davicafu/hexanews/internal/author/domain"
	"github.com/davicafu/hexanews/internal/draft/domain"
	newsDomain "github.com/davicafu/hexanews/internal/news/domain"
	shared "github.com/davicafu/hexanews/internal/shared/domain"
	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

// DraftService define los casos de uso sobre borradores editoriales.
type DraftService struct {
	repo      domain.DraftRepository
	publisher domain.ArticlePublisher
	store     sharedEvents.Store
	txm       tx.Manager
	log       *zap.Logger
}

// NewDraftService constructor
func NewDraftService(repo domain.DraftRepository, publisher domain.ArticlePublisher, store sharedEvents.Store, txm tx.Manager, log *zap.Logger) *DraftService {
	return &DraftService{
		repo:      repo,
		publisher: publisher,
		store:     store,
		txm:       txm,
		log:       log,
	}
}

// CreateDraft crea un borrador vacío; con newsArticleID, un borrador de
// edición sobre esa noticia.
func (s *DraftService) CreateDraft(ctx context.Context, authorID uuid.UUID, createdByUserID string, newsArticleID *uuid.UUID) (*domain.Draft, error) {
	var draft *domain.Draft
	if newsArticleID != nil {
		draft = domain.NewDraftForArticle(*newsArticleID, authorID, createdByUserID)
	} else {
		draft = domain.NewDraft(authorID, createdByUserID)
	}

	if err := s.repo.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DraftService) GetDraft(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DraftService) ListDraftsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Draft, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// UpdateDraft cambia el contenido editable. Un borrador ya publicado es
// de solo lectura.
func (s *DraftService) UpdateDraft(ctx context.Context, id uuid.UUID, headline, text string, image shared.Image) (*domain.Draft, error) {
	draft, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.IsPublished {
		return nil, domain.ErrDraftAlreadyPublished
	}

	draft.Headline = headline
	draft.Text = text
	draft.Image = image

	if err := s.repo.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// DeleteDraft borra un borrador. Uno publicado solo se borra con force.
func (s *DraftService) DeleteDraft(ctx context.Context, id uuid.UUID, force bool) error {
	draft, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if draft.IsPublished && !force {
		return domain.ErrDraftAlreadyPublished
	}
	return s.repo.DeleteByID(ctx, id)
}

// PublishDraft valida el borrador, crea o actualiza la noticia y deja
// registrado news.published, todo en la misma transacción.
func (s *DraftService) PublishDraft(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	var published *domain.Draft
	err := s.txm.InTransaction(ctx, func(ctx context.Context) error {
		draft, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if draft.IsPublished {
			return domain.ErrDraftAlreadyPublished
		}
		if err := draft.ValidateForPublish(); err != nil {
			return err
		}

		draft.MarkPublished(time.Now().UTC())

		newsID, err := s.publisher.PublishArticle(ctx, domain.PublishedArticle{
			ArticleID:     draft.NewsArticleID,
			Headline:      draft.Headline,
			AuthorID:      draft.AuthorID,
			Image:         draft.Image,
			Text:          draft.Text,
			DatePublished: *draft.DatePublished,
		})
		if err != nil {
			return fmt.Errorf("failed to publish article: %w", err)
		}
		draft.NewsArticleID = &newsID

		if err := s.repo.Update(ctx, draft); err != nil {
			return err
		}

		evt := newsDomain.NewNewsPublished(newsID.String(), draft.ID.String(), draft.AuthorID.String())
		if err := s.store.Append(ctx, evt); err != nil {
			return err
		}
		if err := sharedEvents.Emit(ctx, evt); err != nil {
			return err
		}

		published = draft
		return nil
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}

// DeleteDraftsOfAuthor es la cascada que dispara author.deleted.
func (s *DraftService) DeleteDraftsOfAuthor(ctx context.Context, authorID uuid.UUID) error {
	return s.repo.DeleteByAuthor(ctx, authorID)
}

// RegisterEventHandlers registra los handlers locales de este módulo.
func (s *DraftService) RegisterEventHandlers(reg *sharedEvents.HandlerRegistry) {
	reg.Register(authorDomain.KindAuthorDeleted, "delete-drafts-of-author",
		func(ctx context.Context, e sharedEvents.DomainEvent) error {
			deleted, ok := e.(authorDomain.AuthorDeleted)
			if !ok {
				return fmt.Errorf("unexpected event type for %s", e.Kind())
			}
			authorID, err := uuid.Parse(deleted.AuthorID)
			if err != nil {
				return fmt.Errorf("invalid author_id in %s: %w", e.Kind(), err)
			}

			s.log.Info("Borrando borradores del autor eliminado",
				zap.String("author_id", deleted.AuthorID))
			return s.DeleteDraftsOfAuthor(ctx, authorID)
		})
}
