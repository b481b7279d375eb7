package countries

import (
	"context"

	"github.com/joefazee/atlas/app/explorer"
	"github.com/joefazee/atlas/models"
)

type Service interface {
	List(ctx context.Context, filter explorer.Filter) ([]models.Country, error)
	Facets(ctx context.Context) (*explorer.FacetsResponse, error)
	Search(ctx context.Context, name string) ([]models.Country, error)
	ByRegion(ctx context.Context, region string) ([]models.Country, error)
	Detail(ctx context.Context, code string) (*CountryDetail, error)
}
