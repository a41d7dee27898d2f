package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/folioshare/folioshare/config"
	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/session"
	"github.com/folioshare/folioshare/views"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, sessions *session.Manager) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	renderer, err := views.NewRenderer()
	if err != nil {
		return Server{}, err
	}

	router := newRouter(db, sessions, renderer, withConfig(c), withStartupTime(startupTime))

	readTimeout := config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180*time.Second)
	writeTimeout := config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180*time.Second)
	idleTimeout := config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(db database.Database, sessions *session.Manager, renderer *views.Renderer, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware)
	chiRouter.Use(MethodOverride)

	if origins := config.GetString(router.config, "ACCEPTED_ORIGINS", ""); origins != "" {
		chiRouter.Use(cors.Handler(cors.Options{
			AllowedOrigins:   strings.Split(origins, ","),
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "X-Requested-With"},
			AllowCredentials: true,
		}))
	}

	chiRouter.Use(newSessionMiddleware(sessions, db.UserRepo()).populate)

	uploadDir := config.GetString(router.config, "UPLOAD_DIR", "uploads")
	publicDir := config.GetString(router.config, "PUBLIC_DIR", "public")

	handlers := initializeHandlers(db, sessions, renderer, uploadDir)

	responder := NewResponder(log.With().Str("handlerName", "responder").Logger(), renderer, sessions)
	g := newGuards(db.PortfolioRepo(), responder)

	setupRoutes(chiRouter, handlers, g, uploadDir, publicDir)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
