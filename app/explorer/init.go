package explorer

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/internal/deps"
)

const (
	RegistryKey = "explore_registry"
)

// MountPublic mounts the explore session routes
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	sessions := r.Group("/explore/sessions")
	sessions.POST("", handler.OpenSession)
	sessions.GET("/:id", handler.GetSession)
	sessions.DELETE("/:id", handler.CloseSession)
	sessions.PUT("/:id/filters", handler.SetFilters)
	sessions.POST("/:id/term", handler.InputTerm)
	sessions.POST("/:id/reset", handler.ResetFilters)
	sessions.POST("/:id/reload", handler.Reload)
	sessions.GET("/:id/countries", handler.ListCountries)
	sessions.GET("/:id/facets", handler.Facets)
}

// InitServices builds the session registry over source and registers it. The caller
// owns the registry and must CloseAll it on shutdown.
func InitServices(container *deps.Container, source CountrySource, cfg *Config) *Registry {
	registry := NewRegistry(source, cfg, container.Logger)
	container.RegisterService(RegistryKey, registry)
	return registry
}

func createHandler(container *deps.Container) *Handler {
	sessions := container.GetService(RegistryKey).(SessionStore)
	return NewHandler(sessions, container.Sanitizer, container.Logger)
}
