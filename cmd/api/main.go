package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shoplane/shoplane-backend/api/controllers"
	"github.com/shoplane/shoplane-backend/api/routes"
	"github.com/shoplane/shoplane-backend/internal/auth"
	"github.com/shoplane/shoplane-backend/internal/categories"
	"github.com/shoplane/shoplane-backend/internal/dashboard"
	"github.com/shoplane/shoplane-backend/internal/homepage"
	"github.com/shoplane/shoplane-backend/internal/identity"
	"github.com/shoplane/shoplane-backend/internal/media"
	"github.com/shoplane/shoplane-backend/internal/notifications"
	"github.com/shoplane/shoplane-backend/internal/orders"
	product "github.com/shoplane/shoplane-backend/internal/products"
	"github.com/shoplane/shoplane-backend/internal/profiles"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/internal/shops"
	"github.com/shoplane/shoplane-backend/pkg/auth/session"
	"github.com/shoplane/shoplane-backend/pkg/config"
	"github.com/shoplane/shoplane-backend/pkg/db"
	"github.com/shoplane/shoplane-backend/pkg/logger"
	"github.com/shoplane/shoplane-backend/pkg/metrics"
	"github.com/shoplane/shoplane-backend/pkg/migrate"
	"github.com/shoplane/shoplane-backend/pkg/redis"
	"github.com/shoplane/shoplane-backend/pkg/storage/gcs"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
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

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	notificationMetrics := metrics.NewNotificationMetrics(prometheus.DefaultRegisterer)

	profileRepo := profiles.NewRepository(dbClient.DB())
	shopRepo := shops.NewRepository(dbClient.DB())
	categoryRepo := categories.NewRepository(dbClient.DB())
	productRepo := product.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	notificationRepo := notifications.NewRepository(dbClient.DB())
	homepageRepo := homepage.NewRepository(dbClient.DB())

	roleResolver, err := identity.NewResolver(profileRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create role resolver", err)
		os.Exit(1)
	}

	scopeResolver, err := scoping.NewResolver(shopRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create scope resolver", err)
		os.Exit(1)
	}

	dispatcher := notifications.NewDispatcher(notificationRepo, logg, notificationMetrics)

	svcs, err := buildServices(cfg, serviceDeps{
		db:            dbClient,
		sessions:      sessionManager,
		gcs:           gcsClient,
		roles:         roleResolver,
		scopes:        scopeResolver,
		dispatcher:    dispatcher,
		profiles:      profileRepo,
		shops:         shopRepo,
		categories:    categoryRepo,
		products:      productRepo,
		orders:        orderRepo,
		notifications: notificationRepo,
		homepage:      homepageRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	deps := routes.Dependencies{
		Redis:       redisClient,
		Sessions:    sessionManager,
		HTTPMetrics: httpMetrics,
		Pingers: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
			"storage":  gcsClient,
		},
	}

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, deps, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

type serviceDeps struct {
	db            *db.Client
	sessions      *session.Manager
	gcs           *gcs.Client
	roles         *identity.Resolver
	scopes        *scoping.Resolver
	dispatcher    *notifications.Dispatcher
	profiles      *profiles.Repository
	shops         *shops.Repository
	categories    *categories.Repository
	products      *product.Repository
	orders        *orders.Repository
	notifications notifications.Repository
	homepage      *homepage.Repository
}

func buildServices(cfg *config.Config, d serviceDeps) (routes.Services, error) {
	authService, err := auth.NewService(auth.ServiceParams{
		ProfileRepo:    d.profiles,
		SessionManager: d.sessions,
		RoleResolver:   d.roles,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return routes.Services{}, err
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             d.db,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	profileService, err := profiles.NewService(d.profiles)
	if err != nil {
		return routes.Services{}, err
	}

	shopService, err := shops.NewService(d.shops)
	if err != nil {
		return routes.Services{}, err
	}

	categoryService, err := categories.NewService(d.categories)
	if err != nil {
		return routes.Services{}, err
	}

	productService, err := product.NewService(d.products)
	if err != nil {
		return routes.Services{}, err
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		DB:       d.db,
		Store:    d.orders,
		Shops:    d.shops,
		Notifier: d.dispatcher,
	})
	if err != nil {
		return routes.Services{}, err
	}

	dashboardService, err := dashboard.NewService(d.scopes, d.orders, d.products)
	if err != nil {
		return routes.Services{}, err
	}

	homepageService, err := homepage.NewService(d.homepage)
	if err != nil {
		return routes.Services{}, err
	}

	notificationService, err := notifications.NewService(d.notifications)
	if err != nil {
		return routes.Services{}, err
	}

	mediaService, err := media.NewService(d.gcs, cfg.Media)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:          authService,
		Register:      registerService,
		Profiles:      profileService,
		Shops:         shopService,
		Categories:    categoryService,
		Products:      productService,
		Orders:        orderService,
		Dashboard:     dashboardService,
		Homepage:      homepageService,
		Notifications: notificationService,
		Media:         mediaService,
		Scopes:        d.scopes,
	}, nil
}
