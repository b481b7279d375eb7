package explorer

import (
	"context"

	"github.com/joefazee/atlas/models"
)

// CountrySource supplies the full country list. restcountries.Gateway satisfies it.
type CountrySource interface {
	FetchAll(ctx context.Context) ([]models.Country, error)
}

// SessionStore is the part of the Registry the HTTP layer uses.
type SessionStore interface {
	Open(ctx context.Context) (*Session, error)
	Get(id string) (*Session, error)
	Close(id string) error
}

var _ SessionStore = (*Registry)(nil)
