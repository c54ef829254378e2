package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emberworks/storefront-backend/api/controllers"
	"github.com/emberworks/storefront-backend/api/middleware"
	"github.com/emberworks/storefront-backend/internal/analytics"
	"github.com/emberworks/storefront-backend/internal/auth"
	"github.com/emberworks/storefront-backend/internal/cart"
	checkoutsvc "github.com/emberworks/storefront-backend/internal/checkout"
	"github.com/emberworks/storefront-backend/internal/coupons"
	"github.com/emberworks/storefront-backend/internal/orders"
	"github.com/emberworks/storefront-backend/internal/products"
	"github.com/emberworks/storefront-backend/pkg/config"
	"github.com/emberworks/storefront-backend/pkg/enums"
	"github.com/emberworks/storefront-backend/pkg/logger"
	"github.com/emberworks/storefront-backend/pkg/metrics"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth      auth.Service
	Products  products.Service
	Cart      cart.Service
	Coupons   coupons.Service
	Checkout  checkoutsvc.Service
	Analytics analytics.Service
	Orders    *orders.Repository
}

// NewRouter assembles the full HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	cachePinger controllers.Pinger,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.ClientURL),
	)

	requireAuth := middleware.Auth(cfg.JWT, logg)
	requireAdmin := middleware.RequireRole(string(enums.UserRoleAdmin), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbPinger, cachePinger))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(svcs.Auth, logg))
		r.Post("/login", controllers.Login(svcs.Auth, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", controllers.Logout(svcs.Auth, logg))
			r.Get("/me", controllers.Profile(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductsList(svcs.Products, logg))
		r.Get("/featured", controllers.ProductsFeatured(svcs.Products, logg))
		r.Get("/recommendations", controllers.ProductsRecommendations(svcs.Products, logg))
		r.Get("/{productID}", controllers.ProductsGet(svcs.Products, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", controllers.ProductsCreate(svcs.Products, logg))
			r.Delete("/{productID}", controllers.ProductsDelete(svcs.Products, logg))
			r.Patch("/{productID}/featured", controllers.ProductsToggleFeatured(svcs.Products, logg))
		})
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.CartGet(svcs.Cart, logg))
		r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
		r.Put("/items", controllers.CartUpdateItem(svcs.Cart, logg))
		r.Delete("/items/{productID}", controllers.CartRemoveItem(svcs.Cart, logg))
		r.Delete("/", controllers.CartClear(svcs.Cart, logg))
	})

	r.Route("/api/v1/coupons", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.CouponsListMine(svcs.Coupons, logg))
		r.Post("/validate", controllers.CouponsValidate(svcs.Coupons, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", controllers.CouponsCreate(svcs.Coupons, logg))
		})
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/session", controllers.CheckoutCreateSession(svcs.Checkout, logg))
		r.Post("/confirm", controllers.CheckoutConfirm(svcs.Checkout, logg))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", controllers.OrdersListMine(svcs.Orders, logg))
	})

	r.Route("/api/v1/admin/analytics", func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Get("/summary", controllers.AnalyticsSummary(svcs.Analytics, logg))
		r.Get("/daily-sales", controllers.AnalyticsDailySales(svcs.Analytics, logg))
	})

	return r
}
