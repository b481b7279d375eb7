package router

import (
	"github.com/gin-gonic/gin"

	"github.com/joefazee/atlas/internal/deps"
)

// MountFunc represents a function that mounts routes for a module
type MountFunc func(*gin.RouterGroup, *deps.Container)

type Mounter struct {
	container *deps.Container
	prefix    string
}

func NewMounter(container *deps.Container) *Mounter {
	return &Mounter{container: container, prefix: "/api/v1"}
}

// Public routes - no authentication required
func (m *Mounter) Public(engine *gin.Engine) *RouteGroup {
	return &RouteGroup{group: engine.Group(m.prefix), container: m.container}
}

// Authenticated routes - callers attach the auth middleware with WithAuth, since the
// user module depends on this package and not the other way round.
func (m *Mounter) Authenticated(engine *gin.Engine) *RouteGroup {
	return &RouteGroup{group: engine.Group(m.prefix), container: m.container}
}

type RouteGroup struct {
	group     *gin.RouterGroup
	container *deps.Container
}

// Mount provides a fluent interface for mounting modules
func (rg *RouteGroup) Mount(mountFunc MountFunc) *RouteGroup {
	mountFunc(rg.group, rg.container)
	return rg
}

// Group creates a sub-group for organizing routes
func (rg *RouteGroup) Group(path string) *RouteGroup {
	return &RouteGroup{group: rg.group.Group(path), container: rg.container}
}

// WithAuth adds authentication middleware
func (rg *RouteGroup) WithAuth(authMiddleware gin.HandlerFunc) *RouteGroup {
	rg.group.Use(authMiddleware)
	return rg
}
