package deps

import (
	"gorm.io/gorm"

	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/internal/security"
	"github.com/joefazee/atlas/models"
)

// Container holds the shared infrastructure every module is built from, plus the
// repositories and services modules register for each other during startup.
type Container struct {
	DB         *gorm.DB
	TokenMaker security.Maker
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger
	// Identities caches session lookups keyed by session id.
	Identities cache.Cache[models.Identity]

	// keyed by the *Key constants of each module
	repositories map[string]interface{}
	services     map[string]interface{}
}

func NewContainer(db *gorm.DB, tokenMaker security.Maker, sanitizer sanitizer.HTMLStripperer, log logger.Logger, identities cache.Cache[models.Identity]) *Container {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Container{
		DB:           db,
		TokenMaker:   tokenMaker,
		Sanitizer:    sanitizer,
		Logger:       log,
		Identities:   identities,
		repositories: make(map[string]interface{}),
		services:     make(map[string]interface{}),
	}
}

// RegisterRepository stores a repository with a key
func (c *Container) RegisterRepository(key string, repo interface{}) {
	c.repositories[key] = repo
}

// GetRepository retrieves a repository by key
func (c *Container) GetRepository(key string) interface{} {
	return c.repositories[key]
}

// RegisterService stores a service with a key
func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

// GetService retrieves a service by key
func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}

// MustService is GetService for wiring code: it panics when key was never registered.
func (c *Container) MustService(key string) interface{} {
	svc, ok := c.services[key]
	if !ok {
		panic("deps: service " + key + " is not registered")
	}
	return svc
}
