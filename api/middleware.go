package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/folioshare/folioshare/auth"
	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/errs"
	"github.com/folioshare/folioshare/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

// LogInternalServerErrors recovers from handler panics, logs the stack and
// answers 500, and logs non-panic 500 responses.
func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// HTTPLoggingMiddleware logs every request with colored output keyed to the
// response status.
func HTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}

// MethodOverride rewrites POST requests carrying a _method marker into PUT or
// DELETE, so plain HTML forms can drive those routes. The marker is read from
// the query string first; the body is only consulted for urlencoded forms so
// multipart bodies stay unread for the handler.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.URL.Query().Get("_method")
			if override == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				override = r.PostFormValue("_method")
			}
			switch strings.ToUpper(override) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}

// sessionMiddleware loads the session for every request and resolves the
// session-carried user id into the current user. A stale id leaves the
// request anonymous instead of failing it.
type sessionMiddleware struct {
	sessions *session.Manager
	users    *database.UserRepo
	logger   zerolog.Logger
}

func newSessionMiddleware(sessions *session.Manager, users *database.UserRepo) sessionMiddleware {
	return sessionMiddleware{
		sessions: sessions,
		users:    users,
		logger:   log.With().Str("handlerName", "sessionMiddleware").Logger(),
	}
}

func (m sessionMiddleware) populate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := m.sessions.Load(r)
		ctx := ctxWithSession(r.Context(), state)

		if id := state.UserID(); id != "" {
			user, err := auth.ResolveUser(m.users, id)
			if err != nil {
				m.logger.Error().Err(err).Msg("resolving session user")
			} else if user != nil {
				ctx = ctxWithUser(ctx, user)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// guards implements the access-control middleware: requireAuthenticated and
// requireOwnership. Ownership always runs below authentication since it
// dereferences the current user.
type guards struct {
	portfolios *database.PortfolioRepo
	responder  Responder
	logger     zerolog.Logger
}

func newGuards(portfolios *database.PortfolioRepo, responder Responder) guards {
	return guards{
		portfolios: portfolios,
		responder:  responder,
		logger:     log.With().Str("handlerName", "guards").Logger(),
	}
}

func (g guards) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()) == nil {
			state := sessionFrom(r.Context())
			state.StashRedirect(r.URL.RequestURI())
			state.AddFlash("error", "You must be logged in!")
			g.responder.Redirect(w, r, state, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g guards) requireOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())

		portfolioID, err := uuid.Parse(chi.URLParam(r, "portfolioID"))
		if err != nil {
			state.AddFlash("error", "Portfolio not found.")
			g.responder.Redirect(w, r, state, "/portfolio")
			return
		}

		portfolio, err := g.portfolios.FindBare(portfolioID)
		if err != nil {
			g.logger.Error().Err(err).Str("portfolioID", portfolioID.String()).Msg("loading portfolio for ownership check")
			g.responder.WriteError(w, r, errs.NewDatabaseError("find", "portfolio", err))
			return
		}
		if portfolio == nil {
			state.AddFlash("error", "Portfolio not found.")
			g.responder.Redirect(w, r, state, "/portfolio")
			return
		}

		user := userFrom(r.Context())
		if user == nil || user.ID != portfolio.UserID {
			state.AddFlash("error", "You don't have access to this Portfolio")
			g.responder.Redirect(w, r, state, "/portfolio/"+portfolioID.String())
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithPortfolio(r.Context(), portfolio)))
	})
}
