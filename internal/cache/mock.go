package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/joefazee/atlas/models"
)

// MockIdentityCache is a testify mock for the session lookup cache.
type MockIdentityCache struct {
	mock.Mock
}

var _ Cache[models.Identity] = (*MockIdentityCache)(nil)

func (m *MockIdentityCache) Get(ctx context.Context, key string) (models.Identity, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(models.Identity), args.Error(1)
}

func (m *MockIdentityCache) Set(ctx context.Context, key string, value models.Identity, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockIdentityCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockIdentityCache) Close() error {
	return m.Called().Error(0)
}
