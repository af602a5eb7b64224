package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	draftDomain "github.com/davicafu/hexanews/internal/draft/domain"
)

// InMemoryDraftRepo simula DraftRepository.
type InMemoryDraftRepo struct {
	mu     sync.Mutex
	Drafts map[uuid.UUID]*draftDomain.Draft
	order  []uuid.UUID
}

func NewInMemoryDraftRepo() *InMemoryDraftRepo {
	return &InMemoryDraftRepo{Drafts: make(map[uuid.UUID]*draftDomain.Draft)}
}

func (r *InMemoryDraftRepo) Create(ctx context.Context, d *draftDomain.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.Drafts[d.ID] = &cp
	r.order = append(r.order, d.ID)
	return nil
}

func (r *InMemoryDraftRepo) GetByID(ctx context.Context, id uuid.UUID) (*draftDomain.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.Drafts[id]
	if !ok {
		return nil, draftDomain.ErrDraftNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *InMemoryDraftRepo) Update(ctx context.Context, d *draftDomain.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Drafts[d.ID]; !ok {
		return draftDomain.ErrDraftNotFound
	}
	cp := *d
	r.Drafts[d.ID] = &cp
	return nil
}

func (r *InMemoryDraftRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Drafts[id]; !ok {
		return draftDomain.ErrDraftNotFound
	}
	delete(r.Drafts, id)
	return nil
}

func (r *InMemoryDraftRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*draftDomain.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*draftDomain.Draft
	for i := len(r.order) - 1; i >= 0; i-- {
		d, ok := r.Drafts[r.order[i]]
		if ok && d.AuthorID == authorID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *InMemoryDraftRepo) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, d := range r.Drafts {
		if d.AuthorID == authorID {
			delete(r.Drafts, id)
		}
	}
	return nil
}

// MockArticlePublisher simula el puerto hacia el módulo news.
type MockArticlePublisher struct {
	mock.Mock
}

func (m *MockArticlePublisher) PublishArticle(ctx context.Context, a draftDomain.PublishedArticle) (uuid.UUID, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
