package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/literllyHimm/Cinewave/api/controllers"
	"github.com/literllyHimm/Cinewave/api/middleware"
	cartsvc "github.com/literllyHimm/Cinewave/internal/cart"
	"github.com/literllyHimm/Cinewave/internal/lists"
	sessionsvc "github.com/literllyHimm/Cinewave/internal/session"
	"github.com/literllyHimm/Cinewave/internal/users"
	"github.com/literllyHimm/Cinewave/pkg/config"
	"github.com/literllyHimm/Cinewave/pkg/logger"
	"github.com/literllyHimm/Cinewave/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Verifier middleware.TokenVerifier

	Catalog  controllers.CatalogService
	Users    users.Service
	Session  sessionsvc.Service
	Lists    lists.Service
	Cart     cartsvc.Service

	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	HealthDeps map[string]controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.Auth(deps.Verifier, logg),
		middleware.DeviceID(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.HealthDeps))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/home", controllers.CatalogHome(deps.Catalog, logg))
			r.Get("/trending", controllers.CatalogTrending(deps.Catalog, logg))
			r.Get("/search", controllers.CatalogSearch(deps.Catalog, logg))
			r.Get("/movie/now-playing", controllers.CatalogNowPlaying(deps.Catalog, logg))
			r.Get("/movie/upcoming", controllers.CatalogUpcoming(deps.Catalog, logg))
			r.Get("/tv/airing-today", controllers.CatalogAiringToday(deps.Catalog, logg))
			r.Route("/{mediaType}", func(r chi.Router) {
				r.Get("/popular", controllers.CatalogPopular(deps.Catalog, logg))
				r.Get("/top-rated", controllers.CatalogTopRated(deps.Catalog, logg))
				r.Get("/genres", controllers.CatalogGenres(deps.Catalog, logg))
				r.Get("/genre-rails", controllers.CatalogGenreRails(deps.Catalog, logg))
				r.Get("/discover/{genreID}", controllers.CatalogDiscover(deps.Catalog, logg))
				r.Get("/{id}", controllers.CatalogDetails(deps.Catalog, logg))
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(deps.Users, logg))
			r.With(middleware.RequireAuth(logg)).Post("/genres", controllers.AuthSelectGenres(deps.Users, logg))
			r.Post("/logout", controllers.AuthLogout(deps.Session, logg))
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.RequireAuth(logg))
			r.Get("/", controllers.Me(deps.Session, logg))
			r.Put("/preferences", controllers.MeUpdatePreferences(deps.Session, logg))
			r.Put("/profile", controllers.MeUpdateProfile(deps.Users, logg))
			r.Put("/password", controllers.MeUpdatePassword(deps.Users, logg))
		})

		r.Route("/{list:favorites|bookmarks}", func(r chi.Router) {
			r.Get("/", controllers.ListItems(deps.Lists, logg))
			r.With(middleware.RequireAuth(logg)).Post("/", controllers.ListAdd(deps.Lists, logg))
			r.With(middleware.RequireAuth(logg)).Delete("/{itemID}", controllers.ListRemove(deps.Lists, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartItems(deps.Cart, logg))
			r.Post("/", controllers.CartAdd(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Delete("/{itemID}", controllers.CartRemove(deps.Cart, logg))
			r.With(middleware.RequireAuth(logg)).Post("/checkout", controllers.CartCheckout(deps.Cart, logg))
		})
	})

	return r
}
