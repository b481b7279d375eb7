package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joefazee/atlas/app/restcountries"
	"github.com/joefazee/atlas/models"
)

// Gateway is a testify mock of restcountries.Gateway.
type Gateway struct {
	mock.Mock
}

var _ restcountries.Gateway = (*Gateway)(nil)

func (m *Gateway) FetchAll(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	return countries(args.Get(0)), args.Error(1)
}

func (m *Gateway) FetchByCode(ctx context.Context, code string) (*models.Country, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *Gateway) SearchByName(ctx context.Context, name string) ([]models.Country, error) {
	args := m.Called(ctx, name)
	return countries(args.Get(0)), args.Error(1)
}

func (m *Gateway) FetchByRegion(ctx context.Context, region string) ([]models.Country, error) {
	args := m.Called(ctx, region)
	return countries(args.Get(0)), args.Error(1)
}

func (m *Gateway) FetchByCodes(ctx context.Context, codes []string) ([]models.Country, error) {
	args := m.Called(ctx, codes)
	return countries(args.Get(0)), args.Error(1)
}

func countries(v interface{}) []models.Country {
	if v == nil {
		return nil
	}
	return v.([]models.Country)
}
