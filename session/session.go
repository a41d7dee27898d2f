// Package session implements server-side sessions backed by the relational
// store. The cookie carries only an HMAC-signed session id; all state (the
// authenticated user reference, flash messages, the stashed redirect URL)
// lives in the session row's JSON payload.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// CookieName is the session cookie, holding "sid.signature".
	CookieName = "folioshare.sid"

	// TTL matches the original 30-day cookie lifetime.
	TTL = 30 * 24 * time.Hour

	// SweepInterval is how often expired rows are reclaimed.
	SweepInterval = 2 * time.Minute
)

// Flash is a one-request-lifetime user-facing notification. Kind is either
// "success" or "error".
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// payload is the JSON document stored in the session row.
type payload struct {
	UserID      string  `json:"userId,omitempty"`
	Flashes     []Flash `json:"flashes,omitempty"`
	RedirectURL string  `json:"redirectUrl,omitempty"`
}

// State is the per-request view of one session. Handlers mutate it and the
// responder persists it before writing the response.
type State struct {
	sid     string
	changed bool
	data    payload
}

func (s *State) UserID() string { return s.data.UserID }

func (s *State) SetUserID(id string) {
	s.data.UserID = id
	s.changed = true
}

// ClearUser drops the authenticated user from the session on logout.
func (s *State) ClearUser() {
	s.data.UserID = ""
	s.changed = true
}

func (s *State) AddFlash(kind, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Kind: kind, Message: message})
	s.changed = true
}

// PopFlashes returns the pending flashes and discards them. Each flash is
// rendered exactly once.
func (s *State) PopFlashes() []Flash {
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.changed = true
	}
	return flashes
}

// StashRedirect records the originally-requested path for the post-login
// redirect.
func (s *State) StashRedirect(url string) {
	s.data.RedirectURL = url
	s.changed = true
}

// PopRedirect returns and clears the stashed path, or "" when none is set.
func (s *State) PopRedirect() string {
	url := s.data.RedirectURL
	if url != "" {
		s.data.RedirectURL = ""
		s.changed = true
	}
	return url
}

// Manager loads and persists session state against the session repository.
type Manager struct {
	repo   *database.SessionRepo
	secret []byte
	secure bool
	logger zerolog.Logger
}

func NewManager(repo *database.SessionRepo, secret string, secure bool) *Manager {
	return &Manager{
		repo:   repo,
		secret: []byte(secret),
		secure: secure,
		logger: log.With().Str("component", "session").Logger(),
	}
}

// Load resolves the request's session cookie into a State. A missing,
// tampered or expired cookie yields a fresh anonymous session.
func (m *Manager) Load(r *http.Request) *State {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return m.fresh()
	}

	sid, ok := m.verify(cookie.Value)
	if !ok {
		return m.fresh()
	}

	row, err := m.repo.Find(sid)
	if err != nil {
		m.logger.Error().Err(err).Msg("loading session row")
		return m.fresh()
	}
	if row == nil {
		return m.fresh()
	}

	var data payload
	if err := json.Unmarshal([]byte(row.Data), &data); err != nil {
		m.logger.Warn().Str("sid", sid).Msg("discarding undecodable session payload")
		return m.fresh()
	}

	return &State{sid: sid, data: data}
}

// Save persists the state and sets the cookie. New sessions are only written
// once something was stored in them; untouched anonymous sessions leave no
// row behind.
func (m *Manager) Save(w http.ResponseWriter, state *State) error {
	if !state.changed {
		return nil
	}

	raw, err := json.Marshal(state.data)
	if err != nil {
		return err
	}

	row := models.Session{
		SID:       state.sid,
		ExpiresAt: time.Now().Add(TTL),
		Data:      string(raw),
	}
	if err := m.repo.Save(&row); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(state.sid),
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	state.changed = false
	return nil
}

// Destroy deletes the session row and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, state *State) error {
	if err := m.repo.Delete(state.sid); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
	})
	return nil
}

// StartSweeper reclaims expired session rows on a fixed interval until ctx is
// cancelled. The session lifecycle is independent of the User lifecycle.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := m.repo.DeleteExpired(time.Now())
				if err != nil {
					m.logger.Error().Err(err).Msg("sweeping expired sessions")
					continue
				}
				if n > 0 {
					m.logger.Info().Int64("reclaimed", n).Msg("swept expired sessions")
				}
			}
		}
	}()
}

func (m *Manager) fresh() *State {
	return &State{sid: uuid.NewString()}
}

// sign produces the cookie value "sid.hex(hmac-sha256(sid))".
func (m *Manager) sign(sid string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sid))
	return sid + "." + hex.EncodeToString(mac.Sum(nil))
}

// verify splits and checks a cookie value, returning the sid when the
// signature matches.
func (m *Manager) verify(value string) (string, bool) {
	sid, sig, ok := strings.Cut(value, ".")
	if !ok || sid == "" {
		return "", false
	}
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sid))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return sid, true
}
