package restcountries

import (
	"context"

	"github.com/joefazee/atlas/models"
)

// Gateway is the read-only view of the REST Countries API.
type Gateway interface {
	FetchAll(ctx context.Context) ([]models.Country, error)
	FetchByCode(ctx context.Context, code string) (*models.Country, error)
	SearchByName(ctx context.Context, term string) ([]models.Country, error)
	FetchByRegion(ctx context.Context, region string) ([]models.Country, error)
	FetchByCodes(ctx context.Context, codes []string) ([]models.Country, error)
}
