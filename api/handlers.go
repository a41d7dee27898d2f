package api

import (
	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/session"
	"github.com/folioshare/folioshare/views"
	"github.com/rs/zerolog/log"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	portfolioHandler portfolioHandler
	likeHandler      likeHandler
}

// initializeHandlers creates all handlers sharing one responder wired to the
// renderer and session manager.
func initializeHandlers(db database.Database, sessions *session.Manager, renderer *views.Renderer, uploadDir string) *routeHandlers {
	responder := NewResponder(log.With().Str("handlerName", "responder").Logger(), renderer, sessions)
	uploads := newUploadStore(uploadDir)

	return &routeHandlers{
		authHandler:      newAuthHandler(db.UserRepo(), responder),
		portfolioHandler: newPortfolioHandler(db.PortfolioRepo(), db.LikeRepo(), uploads, responder),
		likeHandler:      newLikeHandler(db.LikeRepo(), db.PortfolioRepo(), responder),
	}
}
