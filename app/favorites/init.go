package favorites

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/app/restcountries"
	"github.com/joefazee/atlas/app/storage"
	"github.com/joefazee/atlas/app/user"
	"github.com/joefazee/atlas/internal/deps"
)

const (
	ServiceKey = "favorites_service"
)

// MountPublic mounts the status route, which answers anonymous callers too
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	r.GET("/favorites/:code", user.OptionalMiddleware(container), handler.Status)
}

// MountAuthenticated mounts routes that need a signed-in identity
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	group := r.Group("/favorites")
	group.GET("", handler.List)
	group.POST("/toggle", handler.Toggle)
}

// InitServices registers the favorites service. storage.InitRepositories must run first.
func InitServices(container *deps.Container, cfg *Config) {
	store := container.GetRepository(storage.RepoKey).(storage.Repository)
	container.RegisterService(ServiceKey, NewService(store, cfg, container.Logger))
}

func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	countries := container.GetService(restcountries.GatewayKey).(CountryLookup)
	return NewHandler(service, countries, container.Logger)
}
