package countries

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/app/explorer"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/internal/validator"
)

const maxQueryLength = 100

// Handler handles HTTP requests for the country catalog
type Handler struct {
	service   Service
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

// NewHandler creates a new country handler
func NewHandler(service Service, s sanitizer.HTMLStripperer, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Handler{
		service:   service,
		sanitizer: s,
		logger:    log,
	}
}

// GetCountries godoc
// @Summary List countries
// @Description Fetches every country and applies the optional filters. All given filters must match.
// @Tags countries
// @Produce json
// @Param term query string false "Case-insensitive substring of the common or official name"
// @Param region query string false "Exact region, or all"
// @Param language query string false "Exact language name, or all"
// @Success 200 {object} api.Response{data=[]explorer.CountrySummary}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries [get]
func (h *Handler) GetCountries(c *gin.Context) {
	filter := explorer.Filter{
		Term:     h.sanitizer.StripHTML(c.Query("term")),
		Region:   c.Query("region"),
		Language: c.Query("language"),
	}

	v := validator.New()
	v.Check(validator.MaxRunes(filter.Term, maxQueryLength), "term", "term must not be more than 100 characters")
	v.Check(validator.MaxRunes(filter.Region, maxQueryLength), "region", "region must not be more than 100 characters")
	v.Check(validator.MaxRunes(filter.Language, maxQueryLength), "language", "language must not be more than 100 characters")
	if !v.Valid() {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	countries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.upstreamFailed(c, "list", err)
		return
	}
	api.ListResponse(c, "Countries retrieved successfully", explorer.NewCountrySummaries(countries), len(countries))
}

// GetFacets godoc
// @Summary Regions and languages
// @Description Sorted, de-duplicated values usable as region and language filters.
// @Tags countries
// @Produce json
// @Success 200 {object} api.Response{data=explorer.FacetsResponse}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/facets [get]
func (h *Handler) GetFacets(c *gin.Context) {
	facets, err := h.service.Facets(c.Request.Context())
	if err != nil {
		h.upstreamFailed(c, "facets", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Facets retrieved successfully", facets)
}

// SearchCountries godoc
// @Summary Search countries by name
// @Description Upstream name search. No match yields an empty list.
// @Tags countries
// @Produce json
// @Param name query string true "Name or part of it"
// @Success 200 {object} api.Response{data=[]explorer.CountrySummary}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/search [get]
func (h *Handler) SearchCountries(c *gin.Context) {
	name := strings.TrimSpace(h.sanitizer.StripHTML(c.Query("name")))

	v := validator.New()
	v.Check(validator.NotBlank(name), "name", "name is required")
	v.Check(validator.MaxRunes(name, maxQueryLength), "name", "name must not be more than 100 characters")
	if !v.Valid() {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	countries, err := h.service.Search(c.Request.Context(), name)
	if err != nil {
		h.upstreamFailed(c, "search", err)
		return
	}
	api.ListResponse(c, "Countries retrieved successfully", explorer.NewCountrySummaries(countries), len(countries))
}

// GetCountriesByRegion godoc
// @Summary Countries of a region
// @Tags countries
// @Produce json
// @Param region path string true "Region, e.g. Europe"
// @Success 200 {object} api.Response{data=[]explorer.CountrySummary}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/region/{region} [get]
func (h *Handler) GetCountriesByRegion(c *gin.Context) {
	countries, err := h.service.ByRegion(c.Request.Context(), c.Param("region"))
	if err != nil {
		h.upstreamFailed(c, "region", err)
		return
	}
	api.ListResponse(c, "Countries retrieved successfully", explorer.NewCountrySummaries(countries), len(countries))
}

// GetCountryByCode godoc
// @Summary Country detail
// @Description Full record with formatted population, density, calling code and border names.
// @Tags countries
// @Produce json
// @Param code path string true "Country code (cca2 or cca3)"
// @Success 200 {object} api.Response{data=CountryDetail}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/countries/code/{code} [get]
func (h *Handler) GetCountryByCode(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	if !validator.IsCountryCode(code) {
		api.ValidationErrorResponse(c, map[string]string{"code": "code must be a 2 or 3 letter country code"})
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), code)
	if err != nil {
		h.upstreamFailed(c, "detail", err)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Country retrieved successfully", detail)
}

func (h *Handler) upstreamFailed(c *gin.Context, op string, err error) {
	h.logger.Warn("country lookup failed", logger.Fields{"op": op, "error": err.Error()})
	api.DomainErrorResponse(c, err, "Country", "Failed to fetch countries")
}
