package user

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/app/api"
)

// AuthMiddleware rejects requests without a valid session token.
func AuthMiddleware(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", AuthorizationHeaderKey)

		token := tokenFromRequest(c)
		if token == "" {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		identity, err := service.Authenticate(c.Request.Context(), token)
		if err != nil {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		ContextSetIdentity(c, identity)
		ContextSetToken(c, token)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is present and otherwise
// lets the request through anonymously.
func OptionalAuth(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", AuthorizationHeaderKey)

		if token := tokenFromRequest(c); token != "" {
			if identity, err := service.Authenticate(c.Request.Context(), token); err == nil {
				ContextSetIdentity(c, identity)
				ContextSetToken(c, token)
			}
		}
		c.Next()
	}
}
