package countries

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/app/restcountries"
	"github.com/joefazee/atlas/internal/deps"
)

const (
	ServiceKey = "country_service"
)

// MountPublic mounts public country routes
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	countriesGroup := r.Group("/countries")
	countriesGroup.GET("", handler.GetCountries)
	countriesGroup.GET("/facets", handler.GetFacets)
	countriesGroup.GET("/search", handler.SearchCountries)
	countriesGroup.GET("/region/:region", handler.GetCountriesByRegion)
	countriesGroup.GET("/code/:code", handler.GetCountryByCode)
}

// InitServices registers the catalog service. restcountries.InitServices must run first.
func InitServices(container *deps.Container) {
	gateway := container.GetService(restcountries.GatewayKey).(restcountries.Gateway)
	container.RegisterService(ServiceKey, NewService(gateway, container.Logger))
}

// createHandler creates a handler with all dependencies
func createHandler(container *deps.Container) *Handler {
	service := container.GetService(ServiceKey).(Service)
	return NewHandler(service, container.Sanitizer, container.Logger)
}
