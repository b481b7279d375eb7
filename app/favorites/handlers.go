package favorites

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/app/explorer"
	"github.com/joefazee/atlas/app/user"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/validator"
)

// Handler handles HTTP requests for favorites
type Handler struct {
	service   Service
	countries CountryLookup
	logger    logger.Logger
}

// NewHandler creates a new favorites handler
func NewHandler(service Service, countries CountryLookup, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Handler{service: service, countries: countries, logger: log}
}

// List godoc
// @Summary List favorites
// @Description Returns the stored favorites in the order they were added.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=[]explorer.CountrySummary}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/favorites [get]
func (h *Handler) List(c *gin.Context) {
	countries, err := h.service.List(c.Request.Context(), user.ContextGetIdentity(c))
	if err != nil {
		api.DomainErrorResponse(c, err, "Favorites", "Failed to fetch favorites")
		return
	}
	api.ListResponse(c, "Favorites retrieved successfully", explorer.NewCountrySummaries(countries), len(countries))
}

// Toggle godoc
// @Summary Add or remove a favorite
// @Description Resolves the country through the upstream API and flips its membership.
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ToggleRequest true "Country code"
// @Success 200 {object} api.Response{data=StatusResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/favorites/toggle [post]
func (h *Handler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, "Invalid request body")
		return
	}
	v := validator.New()
	if !req.Validate(v) {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	country, err := h.countries.FetchByCode(c.Request.Context(), req.Code)
	if err != nil {
		api.DomainErrorResponse(c, err, "Country", "Failed to resolve country")
		return
	}

	favorite, err := h.service.Toggle(c.Request.Context(), user.ContextGetIdentity(c), country)
	if err != nil {
		h.logger.Error(err, logger.Fields{"code": req.Code, "op": "toggle favorite"})
		api.DomainErrorResponse(c, err, "Country", "Failed to update favorites")
		return
	}

	message := "Removed from favorites"
	if favorite {
		message = "Added to favorites"
	}
	api.SuccessResponse(c, http.StatusOK, message, &StatusResponse{Code: country.Code(), Favorite: favorite})
}

// Status godoc
// @Summary Favorite status of a country
// @Description Anonymous callers always get false. A 2 letter code is resolved to its cca3 for signed-in callers.
// @Tags favorites
// @Produce json
// @Param code path string true "Country code (cca2 or cca3)"
// @Success 200 {object} api.Response{data=StatusResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/favorites/{code} [get]
func (h *Handler) Status(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	v := validator.New()
	v.Check(validator.IsCountryCode(code), "code", "code must be a 2 or 3 letter country code")
	if !v.Valid() {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	identity := user.ContextGetIdentity(c)
	if identity != nil && len(code) == 2 {
		country, err := h.countries.FetchByCode(c.Request.Context(), code)
		if err != nil {
			api.DomainErrorResponse(c, err, "Country", "Failed to resolve country")
			return
		}
		code = country.Code()
	}

	favorite, err := h.service.IsFavorite(c.Request.Context(), identity, code)
	if err != nil {
		api.DomainErrorResponse(c, err, "Favorites", "Failed to read favorites")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Favorite status", &StatusResponse{Code: code, Favorite: favorite})
}
