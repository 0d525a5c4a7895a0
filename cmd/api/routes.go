package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(app.Http.MethodNotAllowed)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	router.Use(app.Authenticate)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.listMovies)
			r.Get("/featured", app.featuredMovies)
			r.Get("/{id}", app.getMovie)
			r.Get("/{id}/reviews", app.listMovieReviews)
			r.With(app.requireActivatedUser).Post("/{id}/reviews", app.createReview)
		})
		r.Route("/reviews/{id}", func(r chi.Router) {
			r.Use(app.requireActivatedUser)
			r.Put("/", app.updateReview)
			r.Delete("/", app.deleteReview)
		})
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/reviews", app.listUserReviews)
			r.Get("/stats", app.userStats)
			r.Group(func(r chi.Router) {
				r.Use(app.requireActivatedUser)
				r.Get("/watchlist", app.listWatchlist)
				r.Post("/watchlist", app.addToWatchlist)
				r.Delete("/watchlist/{movieId}", app.removeFromWatchlist)
				r.Get("/watchlist/{movieId}/status", app.watchlistStatus)
			})
		})
	})
	return router
}
