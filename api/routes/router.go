package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoplane/shoplane-backend/api/controllers"
	"github.com/shoplane/shoplane-backend/api/middleware"
	"github.com/shoplane/shoplane-backend/internal/auth"
	"github.com/shoplane/shoplane-backend/internal/categories"
	"github.com/shoplane/shoplane-backend/internal/dashboard"
	"github.com/shoplane/shoplane-backend/internal/homepage"
	"github.com/shoplane/shoplane-backend/internal/media"
	"github.com/shoplane/shoplane-backend/internal/notifications"
	"github.com/shoplane/shoplane-backend/internal/orders"
	product "github.com/shoplane/shoplane-backend/internal/products"
	"github.com/shoplane/shoplane-backend/internal/profiles"
	"github.com/shoplane/shoplane-backend/internal/scoping"
	"github.com/shoplane/shoplane-backend/internal/shops"
	"github.com/shoplane/shoplane-backend/pkg/auth/session"
	"github.com/shoplane/shoplane-backend/pkg/config"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	"github.com/shoplane/shoplane-backend/pkg/logger"
	"github.com/shoplane/shoplane-backend/pkg/metrics"
	"github.com/shoplane/shoplane-backend/pkg/redis"
)

// Services collects the wired domain services the router exposes.
type Services struct {
	Auth          auth.Service
	Register      auth.RegisterService
	Profiles      profiles.Service
	Shops         shops.Service
	Categories    categories.Service
	Products      product.Service
	Orders        orders.Service
	Dashboard     *dashboard.Service
	Homepage      homepage.Service
	Notifications notifications.Service
	Media         media.Service
	Scopes        *scoping.Resolver
}

// Dependencies are the infrastructure handles for health checks and
// cross-cutting middleware.
type Dependencies struct {
	Redis       *redis.Client
	Pingers     map[string]controllers.Pinger
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies, svcs Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/shops", controllers.ShopListActive(svcs.Shops, logg))
		r.Get("/shops/{shopId}", controllers.ShopGet(svcs.Shops, logg))
		r.Get("/shops/{shopId}/open", controllers.ShopOpenStatus(svcs.Shops, logg))
		r.Get("/categories", controllers.CategoryList(svcs.Categories, logg))
		r.Get("/homepage/offers", controllers.HomepageOffers(svcs.Homepage, logg))
		r.Get("/homepage/featured", controllers.HomepageFeatured(svcs.Homepage, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.AuthRegister(svcs.Register, svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register/vendor", controllers.AuthRegisterVendor(svcs.Register, svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileMe(svcs.Profiles, logg))
			r.Patch("/", controllers.ProfileUpdate(svcs.Profiles, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/{categoryId}", controllers.CategoryGet(svcs.Categories, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Products, svcs.Scopes, logg))
			r.Get("/{productId}", controllers.ProductGet(svcs.Products, svcs.Scopes, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderPlace(svcs.Orders, logg))
			r.Get("/", controllers.OrderListMine(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderGetMine(svcs.Orders, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, string(enums.RoleVendor), string(enums.RoleAdmin)))

			r.Route("/shops", func(r chi.Router) {
				r.Post("/", controllers.ShopCreate(svcs.Shops, logg))
				r.Get("/", controllers.ShopListMine(svcs.Shops, logg))
				r.Patch("/{shopId}", controllers.ShopUpdate(svcs.Shops, logg))
				r.Post("/{shopId}/active", controllers.ShopSetActive(svcs.Shops, logg))
				r.Post("/{shopId}/schedule", controllers.ShopEditSchedule(svcs.Shops, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.ProductCreate(svcs.Products, svcs.Scopes, logg))
				r.Patch("/{productId}", controllers.ProductUpdate(svcs.Products, svcs.Scopes, logg))
				r.Delete("/{productId}", controllers.ProductDelete(svcs.Products, svcs.Scopes, logg))
				r.Post("/{productId}/stock", controllers.ProductSetStock(svcs.Products, svcs.Scopes, logg))
				r.Post("/{productId}/active", controllers.ProductSetActive(svcs.Products, svcs.Scopes, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(svcs.Orders, svcs.Scopes, logg))
				r.Get("/{orderId}", controllers.OrderGet(svcs.Orders, svcs.Scopes, logg))
				r.Post("/{orderId}/status", controllers.OrderUpdateStatus(svcs.Orders, svcs.Scopes, logg))
				r.Post("/{orderId}/tracking", controllers.OrderSetTracking(svcs.Orders, svcs.Scopes, logg))
			})

			r.Get("/dashboard", controllers.DashboardStats(svcs.Dashboard, logg))
			r.Post("/media", controllers.MediaUpload(svcs.Media, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(logg, string(enums.RoleAdmin)))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.AdminPing())
		r.Get("/dashboard", controllers.DashboardStats(svcs.Dashboard, logg))

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", controllers.AdminProfileList(svcs.Profiles, logg))
			r.Get("/{userId}", controllers.AdminProfileGet(svcs.Profiles, logg))
			r.Post("/{userId}/role", controllers.AdminProfileChangeRole(svcs.Profiles, logg))
			r.Post("/{userId}/active", controllers.AdminProfileSetActive(svcs.Profiles, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCategoryCreate(svcs.Categories, logg))
			r.Patch("/{categoryId}", controllers.AdminCategoryUpdate(svcs.Categories, logg))
			r.Delete("/{categoryId}", controllers.AdminCategoryDelete(svcs.Categories, logg))
		})

		r.Route("/shops", func(r chi.Router) {
			r.Patch("/{shopId}", controllers.ShopUpdate(svcs.Shops, logg))
			r.Post("/{shopId}/active", controllers.ShopSetActive(svcs.Shops, logg))
			r.Post("/{shopId}/schedule", controllers.ShopEditSchedule(svcs.Shops, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(svcs.Orders, svcs.Scopes, logg))
			r.Get("/{orderId}", controllers.OrderGet(svcs.Orders, svcs.Scopes, logg))
			r.Post("/{orderId}/status", controllers.OrderUpdateStatus(svcs.Orders, svcs.Scopes, logg))
			r.Post("/{orderId}/payment-status", controllers.OrderUpdatePaymentStatus(svcs.Orders, svcs.Scopes, logg))
			r.Post("/{orderId}/tracking", controllers.OrderSetTracking(svcs.Orders, svcs.Scopes, logg))
		})

		r.Route("/homepage", func(r chi.Router) {
			r.Route("/offers", func(r chi.Router) {
				r.Get("/", controllers.AdminOfferList(svcs.Homepage, logg))
				r.Post("/", controllers.AdminOfferCreate(svcs.Homepage, logg))
				r.Patch("/{offerId}", controllers.AdminOfferUpdate(svcs.Homepage, logg))
				r.Delete("/{offerId}", controllers.AdminOfferDelete(svcs.Homepage, logg))
				r.Put("/{offerId}/products", controllers.AdminOfferSaveProducts(svcs.Homepage, logg))
			})
			r.Route("/featured", func(r chi.Router) {
				r.Get("/", controllers.AdminFeaturedList(svcs.Homepage, logg))
				r.Put("/", controllers.AdminFeaturedSave(svcs.Homepage, logg))
			})
		})

		r.Post("/media", controllers.MediaUpload(svcs.Media, logg))
		r.Delete("/media", controllers.MediaDelete(svcs.Media, logg))
	})

	return r
}
