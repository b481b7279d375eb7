package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/sanitizer"
)

// Handler handles HTTP requests for the mock identity
type Handler struct {
	service      Service
	sanitizer    sanitizer.HTMLStripperer
	logger       logger.Logger
	secureCookie bool
}

// NewHandler creates a new user handler
func NewHandler(service Service, s sanitizer.HTMLStripperer, log logger.Logger, secureCookie bool) *Handler {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Handler{
		service:      service,
		sanitizer:    s,
		logger:       log,
		secureCookie: secureCookie,
	}
}

// Register godoc
// @Summary Register an account
// @Description Creates an account and signs it in. The session token is returned and also set as the user_session cookie.
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "Account"
// @Success 201 {object} api.Response{data=LoginResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 409 {object} api.Response{error=api.ErrorInfo}
// @Failure 500 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, "Invalid request body")
		return
	}
	req.Sanitize(h.sanitizer)

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.logger.Debug("registration rejected", logger.Fields{"error": err.Error()})
		api.DomainErrorResponse(c, err, "Account", "Failed to register")
		return
	}

	SetSessionCookie(c, resp.AccessToken, resp.ExpiresAt, h.secureCookie)
	api.CreatedResponse(c, "Account registered", resp)
}

// Login godoc
// @Summary Sign in
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} api.Response{data=LoginResponse}
// @Failure 400 {object} api.Response{error=api.ErrorInfo}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequestResponse(c, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		api.DomainErrorResponse(c, err, "Account", "Failed to sign in")
		return
	}

	SetSessionCookie(c, resp.AccessToken, resp.ExpiresAt, h.secureCookie)
	api.SuccessResponse(c, http.StatusOK, "Signed in", resp)
}

// Logout godoc
// @Summary Sign out
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/users/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), ContextGetToken(c)); err != nil {
		api.DomainErrorResponse(c, err, "Session", "Failed to sign out")
		return
	}

	ClearSessionCookie(c, h.secureCookie)
	api.SuccessResponse(c, http.StatusOK, "Signed out", nil)
}

// Me godoc
// @Summary Current identity
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} api.Response{data=models.Identity}
// @Failure 401 {object} api.Response{error=api.ErrorInfo}
// @Router /api/v1/users/me [get]
func (h *Handler) Me(c *gin.Context) {
	identity := ContextGetIdentity(c)
	if identity == nil {
		api.UnauthorizedResponse(c)
		return
	}
	api.SuccessResponse(c, http.StatusOK, "Current user", identity)
}
