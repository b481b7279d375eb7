package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joefazee/atlas/app"
	"github.com/joefazee/atlas/app/api"
	"github.com/joefazee/atlas/app/countries"
	"github.com/joefazee/atlas/app/database"
	apiDoc "github.com/joefazee/atlas/app/doc"
	"github.com/joefazee/atlas/app/explorer"
	"github.com/joefazee/atlas/app/favorites"
	"github.com/joefazee/atlas/app/restcountries"
	"github.com/joefazee/atlas/app/storage"
	"github.com/joefazee/atlas/app/user"
	_ "github.com/joefazee/atlas/docs"
	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/deps"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/router"
	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/internal/security"
	"github.com/joefazee/atlas/models"
)

// @title Atlas API
// @version 1.0
// @description Browse, filter and bookmark the countries of the world.
// @x-logo {"url": "https://go.dev/images/go-logo-white.svg", "altText": "Go API Logo"}

// @contact.name API Support Team

// @license.name MIT License
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	log := logger.NewZeroLogger(os.Stdout, logger.LevelInfo, logger.Fields{"service": "atlas-api"})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], log); err != nil {
		log.Fatal(err, nil)
	}
}

func run(ctx context.Context, args []string, log logger.Logger) error {
	cfg, err := app.LoadConfig(ctx, args)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))

	db, err := database.New(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	identities, err := cache.New[models.Identity](cfg.Cache.Options())
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	defer func() { _ = identities.Close() }()

	container, registry, err := newContainer(cfg, db, identities, log)
	if err != nil {
		return err
	}
	defer registry.CloseAll()

	engine := newEngine(cfg, container, log)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting Atlas API server", logger.Fields{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newContainer wires every module into a container. The registry must be closed by the caller.
func newContainer(cfg *app.Config, db *gorm.DB, identities cache.Cache[models.Identity], log logger.Logger) (*deps.Container, *explorer.Registry, error) {
	tokenMaker, err := security.NewPasetoMaker(cfg.User.SymmetricKey)
	if err != nil {
		return nil, nil, fmt.Errorf("create token maker: %w", err)
	}

	container := deps.NewContainer(db, tokenMaker, sanitizer.NewHTMLStripper(), log, identities)

	storage.InitRepositories(container)
	user.InitRepositories(container, &cfg.User)
	gateway, err := restcountries.InitServices(container, &cfg.RestCountries, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create country gateway: %w", err)
	}
	favorites.InitServices(container, &cfg.Favorites)
	countries.InitServices(container)
	registry := explorer.InitServices(container, gateway, &cfg.Explore)

	return container, registry, nil
}

func newEngine(cfg *app.Config, container *deps.Container, log logger.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(api.Recovery(log), api.RequestLogger(log), api.CorsMiddleware(cfg.CorsOrigin))

	mounter := router.NewMounter(container)

	mounter.Public(r).
		Mount(func(g *gin.RouterGroup, _ *deps.Container) {
			g.GET("/healthz", api.HealthCheck(cfg.Env, cfg.Version))
		}).
		Mount(user.MountPublic).
		Mount(countries.MountPublic).
		Mount(explorer.MountPublic).
		Mount(favorites.MountPublic)

	mounter.Authenticated(r).
		WithAuth(user.Middleware(container)).
		Mount(user.MountAuthenticated).
		Mount(favorites.MountAuthenticated)

	apiDoc.Init(r, cfg.Env)
	return r
}
