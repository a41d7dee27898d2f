package api

import (
	"net/http"
	"strings"

	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/errs"
	"github.com/folioshare/folioshare/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// placeholderImage is shown on the listing for portfolios without an image.
const placeholderImage = "/images/placeholder.png"

type portfolioHandler struct {
	responder  Responder
	logger     zerolog.Logger
	portfolios *database.PortfolioRepo
	likes      *database.LikeRepo
	uploads    uploadStore
}

func newPortfolioHandler(portfolios *database.PortfolioRepo, likes *database.LikeRepo, uploads uploadStore, responder Responder) portfolioHandler {
	return portfolioHandler{
		responder:  responder,
		logger:     log.With().Str("handlerName", "portfolioHandler").Logger(),
		portfolios: portfolios,
		likes:      likes,
		uploads:    uploads,
	}
}

// portfolioCard is the listing annotation of one portfolio: its first image
// (or the placeholder) and its like count.
type portfolioCard struct {
	Portfolio *models.Portfolio
	ImageURL  string
	LikeCount int
}

func makeCards(portfolios []*models.Portfolio) []portfolioCard {
	cards := make([]portfolioCard, 0, len(portfolios))
	for _, p := range portfolios {
		card := portfolioCard{Portfolio: p, ImageURL: placeholderImage, LikeCount: len(p.Likes)}
		if len(p.Images) > 0 {
			card.ImageURL = p.Images[0].ImageURL
		}
		cards = append(cards, card)
	}
	return cards
}

// list renders the public listing of every portfolio.
func (h portfolioHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())

		portfolios, err := h.portfolios.FindAll()
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "portfolios", err))
			return
		}

		h.responder.Render(w, r, state, "homepage", map[string]any{
			"Portfolios": makeCards(portfolios),
		})
	}
}

// myPortfolios renders the caller's own portfolios.
func (h portfolioHandler) myPortfolios() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())
		user := userFrom(r.Context())

		portfolios, err := h.portfolios.FindAllByUser(user.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("fetching own portfolios")
			h.responder.RedirectWithFlash(w, r, state, "error", "An error occurred while retrieving your portfolios.", "/")
			return
		}

		h.responder.Render(w, r, state, "myportfolio", map[string]any{
			"Portfolios": makeCards(portfolios),
		})
	}
}

// newForm renders the creation form.
func (h portfolioHandler) newForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, sessionFrom(r.Context()), "new", nil)
	}
}

// authorPage renders the static author page.
func (h portfolioHandler) authorPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.Render(w, r, sessionFrom(r.Context()), "authorpage", nil)
	}
}

// detail renders one portfolio with its 1:1 relations fully populated, its
// collection relations capped at the detail page size, and whether the
// current (possibly anonymous) user has liked it.
func (h portfolioHandler) detail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())

		portfolioID, err := uuid.Parse(chi.URLParam(r, "portfolioID"))
		if err != nil {
			h.responder.WriteError(w, r, errs.NewNotFound("portfolio"))
			return
		}

		portfolio, err := h.portfolios.FindByID(portfolioID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "portfolio", err))
			return
		}
		if portfolio == nil {
			h.responder.WriteError(w, r, errs.NewNotFound("portfolio"))
			return
		}

		likeCount, err := h.likes.CountByPortfolio(portfolioID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("count", "likes", err))
			return
		}

		hasLiked := false
		if user := userFrom(r.Context()); user != nil {
			hasLiked, err = h.likes.HasLiked(user.ID, portfolioID)
			if err != nil {
				h.responder.WriteError(w, r, errs.NewDatabaseError("find", "like", err))
				return
			}
		}

		h.responder.Render(w, r, state, "show", map[string]any{
			"Portfolio": portfolio,
			"LikeCount": likeCount,
			"HasLiked":  hasLiked,
		})
	}
}

// create performs the atomic multi-entity write: portfolio plus contact,
// education, interest, skills, languages and the optional image, all in one
// transaction owned by the authenticated creator.
func (h portfolioHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())
		user := userFrom(r.Context())

		form, err := parseCreateForm(r)
		if err != nil {
			h.responder.RedirectWithFlash(w, r, state, "error", "Please fill out all required fields.", "/portfolio/new")
			return
		}

		upload, err := h.uploads.Save(r, "image")
		if err != nil {
			h.logger.Error().Err(err).Msg("storing uploaded image")
			h.responder.RedirectWithFlash(w, r, state, "error", "An error occurred while creating your portfolio. Please try again.", "/portfolio/new")
			return
		}

		portfolio := models.Portfolio{
			UserID:      user.ID,
			Name:        form.Name,
			DescribeYou: form.DescribeYou,
			Description: form.Description,
			Contact: &models.Contact{
				Contact: form.Contact,
				Gmail:   form.Gmail,
				Address: form.Address,
			},
			Education: &models.Education{
				Course:    form.Course,
				Institute: form.Institute,
			},
			Interest: &models.Interest{Interest: form.Interest},
		}
		for _, s := range splitCSV(form.Skill) {
			portfolio.Skills = append(portfolio.Skills, models.Skill{Skill: s})
		}
		for _, l := range splitCSV(form.Language) {
			portfolio.Languages = append(portfolio.Languages, models.Language{Language: l})
		}
		if upload != nil {
			portfolio.Images = []models.Image{{
				UserID:    user.ID,
				ImageURL:  upload.URL,
				ImageName: upload.Name,
			}}
		}

		if err := h.portfolios.CreateWithChildren(&portfolio); err != nil {
			h.logger.Error().Err(err).Msg("creating portfolio")
			h.responder.RedirectWithFlash(w, r, state, "error", "An error occurred while creating your portfolio. Please try again.", "/portfolio/new")
			return
		}

		h.responder.RedirectWithFlash(w, r, state, "success", "Portfolio created successfully!", "/")
	}
}

// editForm renders the edit form pre-filled from the stored portfolio. Runs
// below the ownership guard.
func (h portfolioHandler) editForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())
		owned := portfolioFrom(r.Context())

		portfolio, err := h.portfolios.FindByID(owned.ID)
		if err != nil {
			h.responder.WriteError(w, r, errs.NewDatabaseError("find", "portfolio", err))
			return
		}
		if portfolio == nil {
			h.responder.RedirectWithFlash(w, r, state, "error", "Portfolio not found.", "/portfolio")
			return
		}

		skills := make([]string, 0, len(portfolio.Skills))
		for _, s := range portfolio.Skills {
			skills = append(skills, s.Skill)
		}
		languages := make([]string, 0, len(portfolio.Languages))
		for _, l := range portfolio.Languages {
			languages = append(languages, l.Language)
		}

		h.responder.Render(w, r, state, "update", map[string]any{
			"Portfolio":   portfolio,
			"SkillCSV":    strings.Join(skills, ", "),
			"LanguageCSV": strings.Join(languages, ", "),
		})
	}
}

// update applies the scalar update, 1:1 upserts and skill/language
// reconciliation in one transaction. Runs below the ownership guard.
func (h portfolioHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())
		owned := portfolioFrom(r.Context())
		user := userFrom(r.Context())
		editURL := "/portfolio/" + owned.ID.String() + "/edit"

		form, err := parseUpdateForm(r)
		if err != nil {
			h.responder.RedirectWithFlash(w, r, state, "error", "Name and description are required.", editURL)
			return
		}

		upload, err := h.uploads.Save(r, "image")
		if err != nil {
			h.logger.Error().Err(err).Msg("storing uploaded image")
			h.responder.RedirectWithFlash(w, r, state, "error", "An error occurred while updating the portfolio.", editURL)
			return
		}

		upd := database.PortfolioUpdate{
			Name:        form.Name,
			Description: form.Description,
		}
		if form.hasDescribeYou {
			upd.DescribeYou = &form.DescribeYou
		}
		if form.Contact != "" || form.Gmail != "" || form.Address != "" {
			upd.Contact = &database.ContactUpdate{
				Contact: form.Contact,
				Gmail:   form.Gmail,
				Address: form.Address,
			}
		}
		if form.Course != "" || form.Institute != "" {
			upd.Education = &database.EducationUpdate{
				Course:    form.Course,
				Institute: form.Institute,
			}
		}
		if form.Interest != "" {
			upd.Interest = &form.Interest
		}
		if form.Skill != "" {
			upd.Skills = splitCSV(form.Skill)
		}
		if form.Language != "" {
			upd.Languages = splitCSV(form.Language)
		}
		if upload != nil {
			upd.Image = &database.ImageUpdate{
				URL:    upload.URL,
				Name:   upload.Name,
				UserID: user.ID,
			}
		}

		if err := h.portfolios.Update(owned.ID, upd); err != nil {
			h.logger.Error().Err(err).Str("portfolioID", owned.ID.String()).Msg("updating portfolio")
			h.responder.RedirectWithFlash(w, r, state, "error", "An error occurred while updating the portfolio.", editURL)
			return
		}

		h.responder.RedirectWithFlash(w, r, state, "success", "Portfolio updated successfully!", "/portfolio/"+owned.ID.String())
	}
}

// delete removes the portfolio: image rows explicitly, then the portfolio
// row with its cascading children. Programmatic callers (the
// X-Requested-With marker) get a JSON status; browsers a flash and redirect.
func (h portfolioHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionFrom(r.Context())
		owned := portfolioFrom(r.Context())

		if err := h.portfolios.Delete(owned.ID); err != nil {
			h.logger.Error().Err(err).Str("portfolioID", owned.ID.String()).Msg("deleting portfolio")
			h.responder.RedirectWithFlash(w, r, state, "error", "An unexpected error occurred.", "/")
			return
		}

		if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
			h.responder.WriteJSON(w, map[string]string{"message": "Portfolio deleted successfully!"})
			return
		}

		h.responder.RedirectWithFlash(w, r, state, "success", "Deleted Portfolio Successfully!", "/")
	}
}
