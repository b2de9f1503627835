package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deepak-dots/property-management-system/models"
	"github.com/deepak-dots/property-management-system/query"
)

// Map-backed stores mirroring the mongo semantics through the shared
// query.Filter predicate. Handler tests run against these instead of a
// live database.

type MemoryPropertyStore struct {
	mu    sync.RWMutex
	items map[string]models.Property
}

func NewMemoryPropertyStore() *MemoryPropertyStore {
	return &MemoryPropertyStore{items: make(map[string]models.Property)}
}

func (s *MemoryPropertyStore) List(ctx context.Context, f query.Filter, pg query.Page) ([]models.Property, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Property{}
	for _, p := range s.items {
		p := p
		if f.Matches(&p) {
			matched = append(matched, p)
		}
	}

	sortNewestFirst(matched)

	total := int64(len(matched))
	start := pg.Skip()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pg.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (s *MemoryPropertyStore) Get(ctx context.Context, id string) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryPropertyStore) Create(ctx context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.items[p.ID.Hex()] = *p
	return nil
}

func (s *MemoryPropertyStore) Update(ctx context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[p.ID.Hex()]; !ok {
		return ErrNotFound
	}
	s.items[p.ID.Hex()] = *p
	return nil
}

func (s *MemoryPropertyStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryPropertyStore) Related(ctx context.Context, id string, limit int) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	related := []models.Property{}
	for key, p := range s.items {
		if key == id {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

func (s *MemoryPropertyStore) DistinctCities(ctx context.Context) ([]string, error) {
	return s.distinct(func(p models.Property) string { return p.City })
}

func (s *MemoryPropertyStore) DistinctBHKTypes(ctx context.Context) ([]string, error) {
	return s.distinct(func(p models.Property) string { return p.BHKType })
}

func (s *MemoryPropertyStore) distinct(field func(models.Property) string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	values := []string{}
	for _, p := range s.items {
		v := field(p)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func sortNewestFirst(properties []models.Property) {
	sort.Slice(properties, func(i, j int) bool {
		if !properties[i].CreatedAt.Equal(properties[j].CreatedAt) {
			return properties[i].CreatedAt.After(properties[j].CreatedAt)
		}
		return properties[i].ID.Hex() > properties[j].ID.Hex()
	})
}

type MemoryQuoteStore struct {
	mu    sync.RWMutex
	items map[string]models.QuoteRequest
}

func NewMemoryQuoteStore() *MemoryQuoteStore {
	return &MemoryQuoteStore{items: make(map[string]models.QuoteRequest)}
}

func (s *MemoryQuoteStore) Create(ctx context.Context, q *models.QuoteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	s.items[q.ID.Hex()] = *q
	return nil
}

func (s *MemoryQuoteStore) List(ctx context.Context) ([]models.QuoteRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quotes := []models.QuoteRequest{}
	for _, q := range s.items {
		quotes = append(quotes, q)
	}
	sort.Slice(quotes, func(i, j int) bool {
		if !quotes[i].CreatedAt.Equal(quotes[j].CreatedAt) {
			return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
		}
		return quotes[i].ID.Hex() > quotes[j].ID.Hex()
	})
	return quotes, nil
}

func (s *MemoryQuoteStore) Get(ctx context.Context, id string) (*models.QuoteRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}

func (s *MemoryQuoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type MemoryAccountStore struct {
	mu    sync.RWMutex
	items map[string]models.Account
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{items: make(map[string]models.Account)}
}

func (s *MemoryAccountStore) Create(ctx context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Email = strings.ToLower(a.Email)
	for _, existing := range s.items {
		if existing.Email == a.Email {
			return ErrEmailTaken
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	s.items[a.ID.Hex()] = *a
	return nil
}

func (s *MemoryAccountStore) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, a := range s.items {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryAccountStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}
