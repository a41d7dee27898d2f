package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the full HTTP surface: public pages, auth flows, the
// authenticated portfolio mutations and the owner-guarded routes.
func setupRoutes(r chi.Router, handlers *routeHandlers, g guards, uploadDir, publicDir string) {
	// Public pages
	r.Get("/", handlers.portfolioHandler.list())
	r.Get("/portfolio", handlers.portfolioHandler.list())
	r.Get("/portfolio/new", handlers.portfolioHandler.newForm())
	r.Get("/portfolio/author", handlers.portfolioHandler.authorPage())
	r.Get("/portfolio/{portfolioID}", handlers.portfolioHandler.detail())

	// Auth flows
	r.Get("/login", handlers.authHandler.loginForm())
	r.Get("/signin", handlers.authHandler.signinForm())
	r.Post("/login", handlers.authHandler.login())
	r.Post("/register", handlers.authHandler.register())
	r.Get("/logout", handlers.authHandler.logout())

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(g.requireAuthenticated)

		r.Get("/portfolio/my", handlers.portfolioHandler.myPortfolios())
		r.Post("/portfolio", handlers.portfolioHandler.create())
		r.Post("/portfolio/{portfolioID}/like", handlers.likeHandler.toggle())

		// Owner-guarded routes; ownership runs below authentication since it
		// dereferences the current user.
		r.Group(func(r chi.Router) {
			r.Use(g.requireOwnership)

			r.Get("/portfolio/{portfolioID}/edit", handlers.portfolioHandler.editForm())
			r.Put("/portfolio/{portfolioID}", handlers.portfolioHandler.update())
			r.Delete("/portfolio/{portfolioID}", handlers.portfolioHandler.delete())
		})
	})

	// Static assets: uploaded images and the fixed public directory.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	r.Handle("/images/*", http.FileServer(http.Dir(publicDir)))
	r.Handle("/css/*", http.FileServer(http.Dir(publicDir)))
	r.Handle("/js/*", http.FileServer(http.Dir(publicDir)))
}
