package api

import (
	"net/http"

	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/errs"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type likeHandler struct {
	responder  Responder
	logger     zerolog.Logger
	likes      *database.LikeRepo
	portfolios *database.PortfolioRepo
}

func newLikeHandler(likes *database.LikeRepo, portfolios *database.PortfolioRepo, responder Responder) likeHandler {
	return likeHandler{
		responder:  responder,
		logger:     log.With().Str("handlerName", "likeHandler").Logger(),
		likes:      likes,
		portfolios: portfolios,
	}
}

// toggle flips the caller's like on a portfolio: present deletes, absent
// creates. The side effect and resulting state are one operation; there is no
// separate "get current state" step.
func (h likeHandler) toggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())
		user := userFrom(r.Context())

		portfolioID, err := uuid.Parse(chi.URLParam(r, "portfolioID"))
		if err != nil {
			h.responder.WriteError(w, r, errs.NewNotFound("portfolio"))
			return
		}

		portfolio, err := h.portfolios.FindBare(portfolioID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "portfolio", err))
			return
		}
		if portfolio == nil {
			h.responder.RedirectWithFlash(w, r, state, "error", "Portfolio not found.", "/portfolio")
			return
		}

		liked, err := h.likes.Toggle(user.ID, portfolioID)
		if err != nil {
			h.logger.Error().Err(err).Str("portfolioID", portfolioID.String()).Msg("toggling like")
			h.responder.RedirectWithFlash(w, r, state, "error", "An error occurred while processing your like.", backTo(r, portfolioID))
			return
		}

		if liked {
			state.AddFlash("success", "Portfolio liked!")
		} else {
			state.AddFlash("success", "Portfolio unliked!")
		}
		h.responder.Redirect(w, r, state, backTo(r, portfolioID))
	}
}

// backTo returns the referring page, falling back to the portfolio detail
// view when no referrer is present.
func backTo(r *http.Request, portfolioID uuid.UUID) string {
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return "/portfolio/" + portfolioID.String()
}
