package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/literllyHimm/Cinewave/api/controllers"
	"github.com/literllyHimm/Cinewave/api/routes"
	cartsvc "github.com/literllyHimm/Cinewave/internal/cart"
	"github.com/literllyHimm/Cinewave/internal/catalog"
	"github.com/literllyHimm/Cinewave/internal/lists"
	sessionsvc "github.com/literllyHimm/Cinewave/internal/session"
	"github.com/literllyHimm/Cinewave/internal/users"
	"github.com/literllyHimm/Cinewave/pkg/config"
	"github.com/literllyHimm/Cinewave/pkg/firebase"
	"github.com/literllyHimm/Cinewave/pkg/firestore"
	"github.com/literllyHimm/Cinewave/pkg/logger"
	"github.com/literllyHimm/Cinewave/pkg/metrics"
	"github.com/literllyHimm/Cinewave/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	fsClient, err := firestore.New(context.Background(), cfg.Firebase, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap firestore", err)
		os.Exit(1)
	}
	defer func() {
		if err := fsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing firestore", err)
		}
	}()

	authClient, err := firebase.NewAuthClient(context.Background(), cfg.Firebase)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap firebase auth", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	catalogClient, err := catalog.NewClient(cfg.Catalog, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	profileRepo := users.NewRepository(fsClient.Raw())

	usersService, err := users.NewService(users.ServiceParams{
		Identity: authClient,
		Profiles: profileRepo,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	sessionService, err := sessionsvc.NewService(sessionsvc.ServiceParams{
		Profiles:     profileRepo,
		Revoker:      authClient,
		Cache:        redisClient,
		LandingRoute: cfg.App.LandingRoute,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session service", err)
		os.Exit(1)
	}

	listRepo, err := lists.NewRepository(fsClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create list repository", err)
		os.Exit(1)
	}
	listsService, err := lists.NewService(listRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create lists service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Store:     cartStore,
		Purchases: profileRepo,
		Cache:     redisClient,
		Config:    cfg.Cart,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Verifier:    authClient,
			Catalog:     catalogClient,
			Users:       usersService,
			Session:     sessionService,
			Lists:       listsService,
			Cart:        cartService,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
			HealthDeps: map[string]controllers.Pinger{
				"firestore": fsClient,
				"redis":     redisClient,
			},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
