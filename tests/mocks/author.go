package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	authorDomain "github.com/davicafu/hexanews/internal/author/domain"
)

// InMemoryAuthorRepo simula AuthorRepository.
type InMemoryAuthorRepo struct {
	mu       sync.Mutex
	Authors  map[uuid.UUID]*authorDomain.Author
	Defaults map[string]*uuid.UUID
}

func NewInMemoryAuthorRepo() *InMemoryAuthorRepo {
	return &InMemoryAuthorRepo{
		Authors:  make(map[uuid.UUID]*authorDomain.Author),
		Defaults: make(map[string]*uuid.UUID),
	}
}

func (r *InMemoryAuthorRepo) Create(ctx context.Context, a *authorDomain.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.Authors[a.ID] = &cp
	return nil
}

func (r *InMemoryAuthorRepo) GetByID(ctx context.Context, id uuid.UUID) (*authorDomain.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Authors[id]
	if !ok {
		return nil, authorDomain.ErrAuthorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryAuthorRepo) Update(ctx context.Context, a *authorDomain.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Authors[a.ID]; !ok {
		return authorDomain.ErrAuthorNotFound
	}
	cp := *a
	r.Authors[a.ID] = &cp
	return nil
}

func (r *InMemoryAuthorRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Authors[id]; !ok {
		return authorDomain.ErrAuthorNotFound
	}
	delete(r.Authors, id)
	for userID, aid := range r.Defaults {
		if aid != nil && *aid == id {
			r.Defaults[userID] = nil
		}
	}
	return nil
}

func (r *InMemoryAuthorRepo) List(ctx context.Context, limit, offset int) ([]*authorDomain.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*authorDomain.Author
	for _, a := range r.Authors {
		cp := *a
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *InMemoryAuthorRepo) DefaultAuthor(ctx context.Context, userID string) (*uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Defaults[userID], nil
}

func (r *InMemoryAuthorRepo) SetDefaultAuthor(ctx context.Context, userID string, authorID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Defaults[userID] = authorID
	return nil
}

// DummyCache es una caché que nunca acierta; para tests que no miran la caché.
type DummyCache struct{}

func (DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) { return false, nil }
func (DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	return nil
}
func (DummyCache) Delete(ctx context.Context, key string) error { return nil }
