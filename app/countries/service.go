package countries

import (
	"context"
	"strings"

	"github.com/joefazee/atlas/app/explorer"
	"github.com/joefazee/atlas/app/restcountries"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/models"
)

type service struct {
	gateway restcountries.Gateway
	log     logger.Logger
}

// NewService creates the catalog service. Every call goes to the upstream API.
func NewService(gateway restcountries.Gateway, log logger.Logger) Service {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{gateway: gateway, log: log}
}

func (s *service) List(ctx context.Context, filter explorer.Filter) ([]models.Country, error) {
	all, err := s.gateway.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return explorer.Apply(all, filter), nil
}

func (s *service) Facets(ctx context.Context) (*explorer.FacetsResponse, error) {
	all, err := s.gateway.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return &explorer.FacetsResponse{
		Regions:   explorer.Regions(all),
		Languages: explorer.Languages(all),
	}, nil
}

func (s *service) Search(ctx context.Context, name string) ([]models.Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []models.Country{}, nil
	}
	return s.gateway.SearchByName(ctx, name)
}

func (s *service) ByRegion(ctx context.Context, region string) ([]models.Country, error) {
	return s.gateway.FetchByRegion(ctx, region)
}

// Detail fetches one country and resolves its border codes to names. A failed border
// lookup degrades to showing the codes.
func (s *service) Detail(ctx context.Context, code string) (*CountryDetail, error) {
	country, err := s.gateway.FetchByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(country.Borders))
	if len(country.Borders) > 0 {
		neighbours, err := s.gateway.FetchByCodes(ctx, country.Borders)
		if err != nil {
			s.log.Warn("border lookup failed", logger.Fields{"code": country.Code(), "error": err.Error()})
		}
		for i := range neighbours {
			names[neighbours[i].Code()] = neighbours[i].Name.Common
		}
	}

	return NewCountryDetail(country, names), nil
}
