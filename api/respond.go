package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/folioshare/folioshare/errs"
	"github.com/folioshare/folioshare/session"
	"github.com/folioshare/folioshare/views"
	"github.com/rs/zerolog"
)

// Responder writes every kind of response the handlers produce: rendered
// pages, redirects, JSON payloads and mapped errors. It persists session
// state (flashes, redirect stash) before any bytes go out, since the cookie
// must precede the body.
type Responder struct {
	logger   zerolog.Logger
	views    *views.Renderer
	sessions *session.Manager
}

func NewResponder(logger zerolog.Logger, renderer *views.Renderer, sessions *session.Manager) Responder {
	return Responder{logger: logger, views: renderer, sessions: sessions}
}

// Render saves the session, pops pending flashes into the view data and
// executes the page template.
func (r Responder) Render(w http.ResponseWriter, req *http.Request, state *session.State, page string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["Flashes"] = state.PopFlashes()
	if _, ok := data["CurrUser"]; !ok {
		data["CurrUser"] = userFrom(req.Context())
	}

	if err := r.sessions.Save(w, state); err != nil {
		r.logger.Error().Err(err).Msg("saving session before render")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.views.Render(w, page, data); err != nil {
		r.logger.Error().Err(err).Str("page", page).Msg("rendering template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Redirect saves the session and issues a 302 to the given location.
func (r Responder) Redirect(w http.ResponseWriter, req *http.Request, state *session.State, location string) {
	if err := r.sessions.Save(w, state); err != nil {
		r.logger.Error().Err(err).Msg("saving session before redirect")
	}
	http.Redirect(w, req, location, http.StatusFound)
}

// RedirectWithFlash adds one flash and redirects.
func (r Responder) RedirectWithFlash(w http.ResponseWriter, req *http.Request, state *session.State, kind, message, location string) {
	state.AddFlash(kind, message)
	r.Redirect(w, req, state, location)
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps an error to a terminal HTTP response. Expected ApiErrs keep
// their status and safe message; anything else is logged and answered with a
// generic 500 so internal error text never reaches the client.
func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Str("path", req.URL.Path).Msg("unexpected error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiErr.StatusCode >= 500 {
		r.logger.Error().Str("path", req.URL.Path).Msg(apiErr.GetFullError())
		http.Error(w, "Internal Server Error", apiErr.StatusCode)
		return
	}

	http.Error(w, apiErr.Error(), apiErr.StatusCode)
}
