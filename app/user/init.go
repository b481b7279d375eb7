package user

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/app/storage"
	"github.com/joefazee/atlas/internal/deps"
)

const (
	RepoKey    = "user_repository"
	ServiceKey = "user_service"
)

// MountPublic mounts public user routes (registration, login)
func MountPublic(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	userGroup := r.Group("/users")
	userGroup.POST("/register", handler.Register)
	userGroup.POST("/login", handler.Login)
}

// MountAuthenticated mounts routes that need a signed-in identity
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	userGroup := r.Group("/users")
	userGroup.POST("/logout", handler.Logout)
	userGroup.GET("/me", handler.Me)
}

// InitRepositories initializes and registers repositories and services for this module.
// storage.InitRepositories must run first.
func InitRepositories(container *deps.Container, cfg *Config) {
	store := container.GetRepository(storage.RepoKey).(storage.Repository)

	userRepo := NewRepository(store)
	container.RegisterRepository(RepoKey, userRepo)

	userService := NewService(userRepo, container.TokenMaker, container.Identities, cfg, container.Logger)
	container.RegisterService(ServiceKey, userService)
	container.RegisterService(configKey, cfg)
}

// Middleware returns the middleware that requires a signed-in identity.
func Middleware(container *deps.Container) gin.HandlerFunc {
	return AuthMiddleware(container.MustService(ServiceKey).(Service))
}

// OptionalMiddleware returns the middleware that resolves an identity when one is present.
func OptionalMiddleware(container *deps.Container) gin.HandlerFunc {
	return OptionalAuth(container.MustService(ServiceKey).(Service))
}

const configKey = "user_config"

// createHandler creates a user handler with all dependencies
func createHandler(container *deps.Container) *Handler {
	userService := container.GetService(ServiceKey).(Service)
	cfg, _ := container.GetService(configKey).(*Config)
	secure := cfg != nil && cfg.SecureCookie

	return NewHandler(userService, container.Sanitizer, container.Logger, secure)
}
