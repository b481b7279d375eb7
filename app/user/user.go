package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/models"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
	SessionCookieName       = "user_session"
)

const (
	ContextIdentity = "context_identity"
	ContextToken    = "context_token"
)

// ContextSetIdentity sets the signed-in identity in the context
func ContextSetIdentity(c *gin.Context, identity *models.Identity) *gin.Context {
	c.Set(ContextIdentity, identity)
	return c
}

// ContextGetIdentity returns the signed-in identity, or nil for anonymous requests.
func ContextGetIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	identity, _ := v.(*models.Identity)
	return identity
}

// ContextSetToken sets the raw session token in the context
func ContextSetToken(c *gin.Context, token string) *gin.Context {
	c.Set(ContextToken, token)
	return c
}

// ContextGetToken gets the raw session token from the context
func ContextGetToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}

// tokenFromRequest prefers the Authorization header and falls back to the session cookie.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader(AuthorizationHeaderKey); header != "" {
		fields := strings.Fields(header)
		if len(fields) == 2 && strings.EqualFold(fields[0], AuthorizationTypeBearer) {
			return fields[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetSessionCookie stores token in the session cookie until expiresAt.
func SetSessionCookie(c *gin.Context, token string, expiresAt time.Time, secure bool) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
