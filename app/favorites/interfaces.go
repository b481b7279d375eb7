package favorites

import (
	"context"

	"github.com/joefazee/atlas/models"
)

type Service interface {
	IsFavorite(ctx context.Context, identity *models.Identity, code string) (bool, error)
	Toggle(ctx context.Context, identity *models.Identity, country *models.Country) (bool, error)
	List(ctx context.Context, identity *models.Identity) ([]models.Country, error)
}

// CountryLookup resolves a code to the full country snapshot that gets stored.
type CountryLookup interface {
	FetchByCode(ctx context.Context, code string) (*models.Country, error)
}
