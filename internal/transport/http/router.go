package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gojo-homes/api/internal/application/alert"
	"github.com/gojo-homes/api/internal/application/favorite"
	"github.com/gojo-homes/api/internal/application/listing"
	"github.com/gojo-homes/api/internal/application/notification"
	"github.com/gojo-homes/api/internal/application/savedsearch"
	"github.com/gojo-homes/api/internal/application/sitevisit"
	"github.com/gojo-homes/api/internal/config"
	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/transport/http/handler"
	appmiddleware "github.com/gojo-homes/api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := func(next http.Handler) http.Handler { return next }
	optionalAuthMw := authMw
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
		optionalAuthMw = appmiddleware.OptionalAuth(deps.JWTProvider)
	}

	// 5 requests/second, burst of 10, applied to write endpoints.
	writeRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	notifSvc := notification.NewService(deps.NotificationRepo)
	engine := alert.NewEngine(alert.EngineDeps{
		Listings:      deps.ListingRepo,
		Searches:      deps.SavedSearchRepo,
		Users:         deps.UserRepo,
		Notifications: notifSvc,
		Email:         deps.Email,
		SMS:           deps.SMSSender,
		SiteBaseURL:   cfg.SiteBaseURL,
	})

	listingDeps := listing.ServiceDeps{
		Repo:     deps.ListingRepo,
		Alerts:   engine,
		PageSize: int32(cfg.BrowsePageSize),
	}
	if deps.Cache != nil {
		listingDeps.Cache = deps.Cache
	}
	listingSvc := listing.NewService(listingDeps)
	searchSvc := savedsearch.NewService(deps.SavedSearchRepo)
	favoriteSvc := favorite.NewService(deps.FavoriteRepo, deps.ListingRepo)
	visitSvc := sitevisit.NewService(sitevisit.ServiceDeps{
		Repo:          deps.SiteVisitRepo,
		Listings:      deps.ListingRepo,
		Notifications: notifSvc,
	})

	healthH := handler.NewHealthHandler()
	listingH := handler.NewListingHandler(listingSvc)
	searchH := handler.NewSavedSearchHandler(searchSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	favoriteH := handler.NewFavoriteHandler(favoriteSvc)
	visitH := handler.NewSiteVisitHandler(visitSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		// Public browse: claims are injected when present so owners and
		// admins can open their own non-active listings.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuthMw)
			r.Get("/listings", listingH.Browse)
			r.Get("/listings/{id}", listingH.Get)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/saved-searches", searchH.List)
			r.With(writeRL.Limit).Post("/saved-searches", searchH.Create)
			r.Get("/saved-searches/{id}", searchH.Get)
			r.Put("/saved-searches/{id}", searchH.Update)
			r.Delete("/saved-searches/{id}", searchH.Delete)

			r.Get("/notifications", notifH.ListUnread)
			r.Get("/notifications/{id}", notifH.Get)
			r.Put("/notifications/{id}", notifH.MarkAsRead)

			r.Get("/favorites", favoriteH.List)
			r.Get("/favorites/compare", favoriteH.Compare)
			r.With(writeRL.Limit).Post("/favorites", favoriteH.Add)
			r.Delete("/favorites/{id}", favoriteH.Remove)

			r.Get("/site-visits", visitH.ListForUser)
			r.With(writeRL.Limit).Post("/site-visits", visitH.Request)

			// Agent routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAgent, domain.RoleAdmin))

				r.With(writeRL.Limit).Post("/listings", listingH.Create)
				r.Put("/listings/{id}", listingH.Update)
				r.Delete("/listings/{id}", listingH.Delete)
				r.Get("/agents/listings", listingH.ListMine)
				r.Get("/site-visits/agent", visitH.ListForAgent)
				r.Put("/site-visits/{id}", visitH.SetStatus)
			})

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Put("/listings/{id}/approve", listingH.Approve)
			})
		})
	})

	return r
}
