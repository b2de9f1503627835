package store

import (
	"context"
	"errors"

	"github.com/deepak-dots/property-management-system/models"
	"github.com/deepak-dots/property-management-system/query"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// PropertyStore owns persisted property records. List applies the
// compiled filter and returns one page window plus the total match
// count, ordered by creation time descending with the id as tie-break
// so identical calls partition the records identically.
type PropertyStore interface {
	List(ctx context.Context, f query.Filter, pg query.Page) ([]models.Property, int64, error)
	Get(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, p *models.Property) error
	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id string) error
	Related(ctx context.Context, id string, limit int) ([]models.Property, error)
	DistinctCities(ctx context.Context) ([]string, error)
	DistinctBHKTypes(ctx context.Context) ([]string, error)
}

type QuoteStore interface {
	Create(ctx context.Context, q *models.QuoteRequest) error
	List(ctx context.Context) ([]models.QuoteRequest, error)
	Get(ctx context.Context, id string) (*models.QuoteRequest, error)
	Delete(ctx context.Context, id string) error
}

// AccountStore enforces case-insensitive email uniqueness; Create
// returns ErrEmailTaken for a registered address.
type AccountStore interface {
	Create(ctx context.Context, a *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}
