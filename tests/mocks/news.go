package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	newsDomain "github.com/davicafu/hexanews/internal/news/domain"
)

// InMemoryNewsRepo simula NewsRepository.
type InMemoryNewsRepo struct {
	mu       sync.Mutex
	Articles map[uuid.UUID]*newsDomain.NewsArticle
}

func NewInMemoryNewsRepo() *InMemoryNewsRepo {
	return &InMemoryNewsRepo{Articles: make(map[uuid.UUID]*newsDomain.NewsArticle)}
}

func (r *InMemoryNewsRepo) Upsert(ctx context.Context, a *newsDomain.NewsArticle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.Articles[a.ID] = &cp
	return nil
}

func (r *InMemoryNewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*newsDomain.NewsArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Articles[id]
	if !ok {
		return nil, newsDomain.ErrNewsNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryNewsRepo) List(ctx context.Context, limit, offset int) ([]*newsDomain.NewsArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*newsDomain.NewsArticle
	for _, a := range r.Articles {
		if a.IsRevoked() {
			continue
		}
		cp := *a
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DatePublished.After(all[j].DatePublished) })

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
