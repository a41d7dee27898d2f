package api

import (
	"net/http"
	"strings"

	"github.com/folioshare/folioshare/auth"
	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *database.UserRepo
}

func newAuthHandler(users *database.UserRepo, responder Responder) authHandler {
	return authHandler{
		responder: responder,
		logger:    log.With().Str("handlerName", "authHandler").Logger(),
		users:     users,
	}
}

// loginForm renders the login page.
func (h authHandler) loginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, sessionFrom(r.Context()), "login", nil)
	}
}

// signinForm renders the registration page.
func (h authHandler) signinForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, sessionFrom(r.Context()), "signin", nil)
	}
}

// register creates an account. A duplicate username gets its own flash,
// distinct from the generic failure; both redirect to the login view without
// creating a session.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")

		_, err := auth.Register(h.users, username, password)
		if err != nil {
			if errs.IsAlreadyExists(err) {
				h.responder.RedirectWithFlash(w, r, state, "error", "Username already exists.", "/login")
				return
			}
			h.logger.Error().Err(err).Msg("registration failed")
			h.responder.RedirectWithFlash(w, r, state, "error", "Registration failed. Please try again.", "/login")
			return
		}

		h.responder.RedirectWithFlash(w, r, state, "success", "Registration successful!", "/login")
	}
}

// login verifies credentials and binds the user into the session. The
// failure flash is identical for an unknown username and a wrong password.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())

		username := r.FormValue("username")
		password := r.FormValue("password")

		user, err := auth.VerifyCredentials(h.users, username, password)
		if err != nil {
			if !errs.IsAuthFailure(err) {
				h.logger.Error().Err(err).Msg("credential verification failed")
			}
			h.responder.RedirectWithFlash(w, r, state, "error", "Invalid username or password", "/login")
			return
		}

		state.SetUserID(user.ID.String())

		target := state.PopRedirect()
		if target == "" {
			target = "/"
		}
		h.responder.Redirect(w, r, state, target)
	}
}

// logout drops the user from the session.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())
		state.ClearUser()
		h.responder.RedirectWithFlash(w, r, state, "success", "Logged out successfully.", "/")
	}
}
