package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/config"
	"storefront/controllers"
	"storefront/middleware"
	"storefront/repositories"
	"storefront/routes"
	"storefront/utils"
)

var (
	router  http.Handler
	initErr error
	once    sync.Once
)

// NewHandler assembles the demo gateway: seeded users and catalog, in-memory
// carts, HS256 tokens signed with cfg.JWTSecret.
func NewHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	if logger == nil {
		logger = config.DiscardLogger()
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required to run the gateway")
	}

	users, err := repositories.NewDemoUserRepository()
	if err != nil {
		return nil, err
	}
	issuer := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := middleware.NewMetrics(registry)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware(logger))
	engine.Use(middleware.CORSMiddleware(cfg.OriginURL))
	engine.Use(metrics.Middleware())

	routes.SetupRoutes(engine, routes.Dependencies{
		Auth:     controllers.NewAuthController(users, issuer),
		Products: controllers.NewProductController(repositories.NewDemoProductRepository()),
		Cart:     controllers.NewCartController(repositories.NewCartRepository()),
		Issuer:   issuer,
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	return engine, nil
}

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger := config.NewLogger(cfg, os.Stderr)
		router, initErr = NewHandler(cfg, logger)
		if initErr != nil {
			logger.Error("gateway init failed", "error", initErr)
		}
	})
}

// Handler is the serverless entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		http.Error(w, `{"detail":"gateway is not configured"}`, http.StatusInternalServerError)
		return
	}
	router.ServeHTTP(w, r)
}
