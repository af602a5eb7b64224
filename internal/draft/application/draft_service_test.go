package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authorDomain "github.com/davicafu/hexanews/internal/author/domain"
	"github.com/davicafu/hexanews/internal/draft/domain"
	newsDomain "github.com/davicafu/hexanews/internal/news/domain"
	shared "github.com/davicafu/hexanews/internal/shared/domain"
	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/tests/mocks"
)

func newDraftService(t *testing.T) (*DraftService, *mocks.InMemoryDraftRepo, *mocks.MockArticlePublisher, *mocks.InMemoryEventStore, *mocks.FakeTxManager) {
	t.Helper()
	repo := mocks.NewInMemoryDraftRepo()
	publisher := new(mocks.MockArticlePublisher)
	store := mocks.NewInMemoryEventStore()
	txm := &mocks.FakeTxManager{}
	svc := NewDraftService(repo, publisher, store, txm, zap.NewNop())
	return svc, repo, publisher, store, txm
}

func completeDraft(t *testing.T, svc *DraftService) *domain.Draft {
	t.Helper()
	draft, err := svc.CreateDraft(context.Background(), uuid.New(), "user-1", nil)
	require.NoError(t, err)

	draft, err = svc.UpdateDraft(context.Background(), draft.ID, "Titular", "Cuerpo de la noticia", shared.Image{
		URL: "https://example.com/foto.jpg", Description: "foto", Author: "fotógrafo",
	})
	require.NoError(t, err)
	return draft
}

func TestPublishDraft_HappyPath(t *testing.T) {
	// ARRANGE
	svc, repo, publisher, store, _ := newDraftService(t)
	draft := completeDraft(t, svc)

	newsID := uuid.New()
	publisher.On("PublishArticle", mock.Anything, mock.AnythingOfType("domain.PublishedArticle")).
		Return(newsID, nil).Once()

	// ACT
	published, err := svc.PublishDraft(context.Background(), draft.ID)

	// ASSERT
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.NewsArticleID)
	assert.Equal(t, newsID, *published.NewsArticleID)
	require.NotNil(t, published.DatePublished)

	stored, err := repo.GetByID(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublished)

	events := store.All()
	require.Len(t, events, 1)
	evt, ok := events[0].(newsDomain.NewsPublished)
	require.True(t, ok)
	assert.Equal(t, newsID.String(), evt.NewsID)
	assert.Equal(t, draft.ID.String(), evt.DraftID)

	publisher.AssertExpectations(t)
}

func TestPublishDraft_ValidationCollectsAllProblems(t *testing.T) {
	svc, _, _, store, _ := newDraftService(t)
	draft, err := svc.CreateDraft(context.Background(), uuid.New(), "user-1", nil)
	require.NoError(t, err)

	_, err = svc.PublishDraft(context.Background(), draft.ID)

	assert.ErrorIs(t, err, domain.ErrEmptyHeadline)
	assert.ErrorIs(t, err, domain.ErrEmptyText)
	assert.ErrorIs(t, err, domain.ErrMissingImage)
	assert.Empty(t, store.All(), "sin publicación no hay evento")
}

func TestPublishDraft_AlreadyPublished(t *testing.T) {
	svc, _, publisher, _, _ := newDraftService(t)
	draft := completeDraft(t, svc)

	publisher.On("PublishArticle", mock.Anything, mock.Anything).Return(uuid.New(), nil).Once()
	_, err := svc.PublishDraft(context.Background(), draft.ID)
	require.NoError(t, err)

	_, err = svc.PublishDraft(context.Background(), draft.ID)
	assert.ErrorIs(t, err, domain.ErrDraftAlreadyPublished)
	publisher.AssertExpectations(t)
}

func TestPublishDraft_PublisherFailureAbortsEverything(t *testing.T) {
	svc, repo, publisher, store, _ := newDraftService(t)
	draft := completeDraft(t, svc)

	publisher.On("PublishArticle", mock.Anything, mock.Anything).
		Return(uuid.Nil, errors.New("news repo is down")).Once()

	_, err := svc.PublishDraft(context.Background(), draft.ID)
	assert.Error(t, err)

	stored, err := repo.GetByID(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublished)
	assert.Empty(t, store.All())
}

func TestUpdateDraft_PublishedIsReadOnly(t *testing.T) {
	svc, _, publisher, _, _ := newDraftService(t)
	draft := completeDraft(t, svc)

	publisher.On("PublishArticle", mock.Anything, mock.Anything).Return(uuid.New(), nil).Once()
	_, err := svc.PublishDraft(context.Background(), draft.ID)
	require.NoError(t, err)

	_, err = svc.UpdateDraft(context.Background(), draft.ID, "otro", "texto", shared.Image{URL: "u"})
	assert.ErrorIs(t, err, domain.ErrDraftAlreadyPublished)
}

func TestDeleteDraft_PublishedNeedsForce(t *testing.T) {
	svc, repo, publisher, _, _ := newDraftService(t)
	draft := completeDraft(t, svc)

	publisher.On("PublishArticle", mock.Anything, mock.Anything).Return(uuid.New(), nil).Once()
	_, err := svc.PublishDraft(context.Background(), draft.ID)
	require.NoError(t, err)

	err = svc.DeleteDraft(context.Background(), draft.ID, false)
	assert.ErrorIs(t, err, domain.ErrDraftAlreadyPublished)

	require.NoError(t, svc.DeleteDraft(context.Background(), draft.ID, true))
	_, err = repo.GetByID(context.Background(), draft.ID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestRegisterEventHandlers_CascadeOnAuthorDeleted(t *testing.T) {
	// ARRANGE
	svc, repo, _, _, _ := newDraftService(t)
	authorID := uuid.New()

	_, err := svc.CreateDraft(context.Background(), authorID, "user-1", nil)
	require.NoError(t, err)
	_, err = svc.CreateDraft(context.Background(), authorID, "user-2", nil)
	require.NoError(t, err)
	other, err := svc.CreateDraft(context.Background(), uuid.New(), "user-3", nil)
	require.NoError(t, err)

	reg := sharedEvents.NewHandlerRegistry()
	svc.RegisterEventHandlers(reg)

	// ACT: simulamos el dispatch del evento
	buf := sharedEvents.NewBuffer()
	require.NoError(t, buf.Append(authorDomain.NewAuthorDeleted(authorID.String())))
	err = sharedEvents.NewDispatcher(reg, zap.NewNop()).Dispatch(context.Background(), buf)

	// ASSERT: caen los borradores del autor, el ajeno sobrevive
	require.NoError(t, err)
	drafts, err := svc.ListDraftsByAuthor(context.Background(), authorID)
	require.NoError(t, err)
	assert.Empty(t, drafts)

	_, err = repo.GetByID(context.Background(), other.ID)
	assert.NoError(t, err)
}
