package explorer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/sanitizer"
)

// Handler serves explore sessions over HTTP.
type Handler struct {
	sessions  SessionStore
	sanitizer sanitizer.HTMLStripperer
	log       logger.Logger
}

func NewHandler(sessions SessionStore, s sanitizer.HTMLStripperer, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Handler{sessions: sessions, sanitizer: s, log: log}
}

// OpenSession godoc
// @Summary Open an explore session
// @Description Creates a session and loads the full country list into it. A failed load still creates the session; its error field is set and a reload can be requested.
// @Tags explore
// @Produce json
// @Success 201 {object} api.Response{data=SessionResponse}
// @Failure 503 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions [post]
func (h *Handler) OpenSession(c *gin.Context) {
	s, err := h.sessions.Open(c.Request.Context())
	if err != nil {
		h.sessionError(c, err)
		return
	}
	api.CreatedResponse(c, "Explore session opened", newSessionResponse(s))
}

// GetSession godoc
// @Summary Get an explore session
// @Tags explore
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} api.Response{data=SessionResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Explore session retrieved", newSessionResponse(s))
}

// CloseSession godoc
// @Summary Close an explore session
// @Tags explore
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions/{id} [delete]
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		h.sessionError(c, err)
		return
	}
	api.DeletedResponse(c, "Explore session closed")
}

// SetFilters godoc
// @Summary Replace the session filter
// @Description Sets term, region and language at once. Empty values and "all" clear a predicate.
// @Tags explore
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body FilterRequest true "Filter"
// @Success 200 {object} api.Response{data=SessionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions/{id}/filters [put]
func (h *Handler) SetFilters(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	s.SetFilter(Filter{
		Term:     h.sanitizer.StripHTML(req.Term),
		Region:   req.Region,
		Language: req.Language,
	})
	api.SuccessResponse(c, http.StatusOK, "Filter applied", newSessionResponse(s))
}

// InputTerm godoc
// @Summary Type into the search box
// @Description The term is applied after the quiet period; superseded input is dropped. Pass flush=true to apply it immediately.
// @Tags explore
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param flush query bool false "Apply immediately"
// @Param request body TermRequest true "Term"
// @Success 200 {object} api.Response{data=SessionResponse}
// @Success 202 {object} api.Response{data=SessionResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions/{id}/term [post]
func (h *Handler) InputTerm(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req TermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}
	flush, _ := strconv.ParseBool(c.DefaultQuery("flush", "false"))

	s.InputTerm(h.sanitizer.StripHTML(req.Term))
	if flush {
		s.FlushInput()
		api.SuccessResponse(c, http.StatusOK, "Search term applied", newSessionResponse(s))
		return
	}
	api.AcceptedResponse(c, "Search term queued", newSessionResponse(s))
}

// ResetFilters godoc
// @Summary Clear every predicate
// @Tags explore
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} api.Response{data=SessionResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions/{id}/reset [post]
func (h *Handler) ResetFilters(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Reset()
	api.SuccessResponse(c, http.StatusOK, "Filter cleared", newSessionResponse(s))
}

// Reload godoc
// @Summary Refetch the country list
// @Description Replaces the session list. The active filter is kept; on failure the previous list stays visible.
// @Tags explore
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} api.Response{data=SessionResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Failure 502 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions/{id}/reload [post]
func (h *Handler) Reload(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Engine().Load(c.Request.Context()); err != nil {
		h.log.Warn("explore reload failed", logger.Fields{"session_id": s.ID, "error": err.Error()})
		api.DomainErrorResponse(c, err, "Countries", "Failed to reload countries")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Countries reloaded", newSessionResponse(s))
}

// ListCountries godoc
// @Summary Visible countries of a session
// @Tags explore
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} api.Response{data=[]CountrySummary}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions/{id}/countries [get]
func (h *Handler) ListCountries(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	visible := s.Engine().Visible()
	api.ListResponse(c, "Countries retrieved successfully", NewCountrySummaries(visible), len(visible))
}

// Facets godoc
// @Summary Regions and languages of the loaded list
// @Tags explore
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} api.Response{data=FacetsResponse}
// @Failure 404 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/explore/sessions/{id}/facets [get]
func (h *Handler) Facets(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Facets retrieved successfully", newFacetsResponse(s.Engine()))
}

func (h *Handler) session(c *gin.Context) (*Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTooManySessions), errors.Is(err, ErrRegistryClosed):
		api.ServiceUnavailableResponse(c, err.Error())
	default:
		api.DomainErrorResponse(c, err, "Explore session", "Explore session failed")
	}
}
