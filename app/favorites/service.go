package favorites

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/joefazee/atlas/app/storage"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/models"
)

const sharedKey = "favorites"

type service struct {
	store storage.Repository
	cfg   *Config
	log   logger.Logger

	// toggles are read-modify-write of one stored array
	mu sync.Mutex
}

// NewService creates a favorites service over the local storage area.
func NewService(store storage.Repository, cfg *Config, log logger.Logger) Service {
	if cfg == nil {
		cfg = GetDefaultConfig()
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &service{store: store, cfg: cfg, log: log}
}

func (s *service) key(identity *models.Identity) string {
	if s.cfg.PerUser {
		return sharedKey + ":" + identity.ID
	}
	return sharedKey
}

func (s *service) load(ctx context.Context, key string) ([]models.Country, error) {
	var countries []models.Country
	err := s.store.Get(ctx, key, &countries)
	if errors.Is(err, models.ErrRecordNotFound) {
		return []models.Country{}, nil
	}
	if err != nil {
		return nil, err
	}
	if countries == nil {
		countries = []models.Country{}
	}
	return countries, nil
}

// IsFavorite is false for anonymous callers without consulting storage.
func (s *service) IsFavorite(ctx context.Context, identity *models.Identity, code string) (bool, error) {
	if identity == nil {
		return false, nil
	}
	countries, err := s.load(ctx, s.key(identity))
	if err != nil {
		return false, err
	}
	return indexOf(countries, code) >= 0, nil
}

// Toggle removes the country when present and appends the full snapshot otherwise,
// then persists the whole list. It returns the new membership.
func (s *service) Toggle(ctx context.Context, identity *models.Identity, country *models.Country) (bool, error) {
	if identity == nil {
		return false, models.ErrUnauthorized
	}
	if country == nil || country.Code() == "" {
		return false, models.ErrInvalidCountryCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.key(identity)
	countries, err := s.load(ctx, key)
	if err != nil {
		return false, err
	}

	favorite := true
	if i := indexOf(countries, country.Code()); i >= 0 {
		countries = append(countries[:i], countries[i+1:]...)
		favorite = false
	} else {
		countries = append(countries, *country)
	}

	if err := s.store.Set(ctx, key, countries); err != nil {
		return false, err
	}
	s.log.Debug("favorite toggled", logger.Fields{"code": country.Code(), "favorite": favorite, "user_id": identity.ID})
	return favorite, nil
}

func (s *service) List(ctx context.Context, identity *models.Identity) ([]models.Country, error) {
	if identity == nil {
		return nil, models.ErrUnauthorized
	}
	return s.load(ctx, s.key(identity))
}

func indexOf(countries []models.Country, code string) int {
	for i := range countries {
		if strings.EqualFold(countries[i].Code(), code) {
			return i
		}
	}
	return -1
}
