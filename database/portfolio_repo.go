package database

import (
	"errors"

	"github.com/folioshare/folioshare/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// detailPageSize caps each collection relation on the detail view.
const detailPageSize = 5

type PortfolioRepo struct {
	db *gorm.DB
}

func NewPortfolioRepo(db *gorm.DB) *PortfolioRepo {
	return &PortfolioRepo{db}
}

// FindAll returns every portfolio with its images and likes preloaded, for
// the public listing. No pagination: the listing renders the full set.
func (r *PortfolioRepo) FindAll() ([]*models.Portfolio, error) {
	var portfolios []*models.Portfolio
	err := r.db.Preload("Images").Preload("Likes").Find(&portfolios).Error
	return portfolios, err
}

// FindAllByUser returns the given user's portfolios with images and likes
// preloaded.
func (r *PortfolioRepo) FindAllByUser(userID uuid.UUID) ([]*models.Portfolio, error) {
	var portfolios []*models.Portfolio
	err := r.db.Where("user_id = ?", userID).
		Preload("Images").Preload("Likes").
		Find(&portfolios).Error
	return portfolios, err
}

// FindByID returns one portfolio with its 1:1 relations fully populated and
// its collection relations capped at the detail page size. Returns nil when
// the id does not resolve.
func (r *PortfolioRepo) FindByID(id uuid.UUID) (*models.Portfolio, error) {
	capped := func(db *gorm.DB) *gorm.DB {
		return db.Limit(detailPageSize)
	}

	var portfolio models.Portfolio
	err := r.db.
		Preload("Contact").
		Preload("Education").
		Preload("Interest").
		Preload("Skills", capped).
		Preload("Languages", capped).
		Preload("Images", capped).
		First(&portfolio, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// FindBare returns a portfolio without any relations, for ownership checks.
func (r *PortfolioRepo) FindBare(id uuid.UUID) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := r.db.First(&portfolio, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// CreateWithChildren inserts a portfolio together with its nested contact,
// education, interest, skill, language and image records in one transaction.
// Partial creation is never observable.
func (r *PortfolioRepo) CreateWithChildren(portfolio *models.Portfolio) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(portfolio).Error
	})
}

// ContactUpdate carries the contact fields of an update. A nil pointer on
// PortfolioUpdate means the 1:1 child is left untouched.
type ContactUpdate struct {
	Contact string
	Gmail   string
	Address string
}

type EducationUpdate struct {
	Course    string
	Institute string
}

type ImageUpdate struct {
	URL    string
	Name   string
	UserID uuid.UUID
}

// PortfolioUpdate is the full input of an update operation. Name and
// Description are mandatory; every other member is optional. Nil slices mean
// the corresponding child set is left untouched.
type PortfolioUpdate struct {
	Name        string
	Description string
	DescribeYou *string
	Contact     *ContactUpdate
	Education   *EducationUpdate
	Interest    *string
	Skills      []string
	Languages   []string
	Image       *ImageUpdate
}

// Update applies the scalar update, the 1:1 upserts and the skill/language
// set-reconciliation in a single transaction. Failure of any part rolls back
// all parts.
func (r *PortfolioRepo) Update(id uuid.UUID, upd PortfolioUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		scalars := map[string]any{
			"name":        upd.Name,
			"description": upd.Description,
		}
		if upd.DescribeYou != nil {
			scalars["describe_you"] = *upd.DescribeYou
		}
		res := tx.Model(&models.Portfolio{}).Where("id = ?", id).Updates(scalars)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		onPortfolioConflict := func(columns ...string) clause.OnConflict {
			return clause.OnConflict{
				Columns:   []clause.Column{{Name: "portfolio_id"}},
				DoUpdates: clause.AssignmentColumns(columns),
			}
		}

		if upd.Contact != nil {
			contact := models.Contact{
				PortfolioID: id,
				Contact:     upd.Contact.Contact,
				Gmail:       upd.Contact.Gmail,
				Address:     upd.Contact.Address,
			}
			if err := tx.Clauses(onPortfolioConflict("contact", "gmail", "address")).Create(&contact).Error; err != nil {
				return err
			}
		}

		if upd.Education != nil {
			education := models.Education{
				PortfolioID: id,
				Course:      upd.Education.Course,
				Institute:   upd.Education.Institute,
			}
			if err := tx.Clauses(onPortfolioConflict("course", "institute")).Create(&education).Error; err != nil {
				return err
			}
		}

		if upd.Interest != nil {
			interest := models.Interest{PortfolioID: id, Interest: *upd.Interest}
			if err := tx.Clauses(onPortfolioConflict("interest")).Create(&interest).Error; err != nil {
				return err
			}
		}

		if upd.Image != nil {
			image := models.Image{
				PortfolioID: id,
				UserID:      upd.Image.UserID,
				ImageURL:    upd.Image.URL,
				ImageName:   upd.Image.Name,
			}
			if err := tx.Clauses(onPortfolioConflict("image_url", "image_name")).Create(&image).Error; err != nil {
				return err
			}
		}

		if upd.Skills != nil {
			var current []string
			if err := tx.Model(&models.Skill{}).Where("portfolio_id = ?", id).Pluck("skill", &current).Error; err != nil {
				return err
			}
			err := syncChildSet(tx, id, "skill", current, upd.Skills, func(v string) models.Skill {
				return models.Skill{PortfolioID: id, Skill: v}
			})
			if err != nil {
				return err
			}
		}

		if upd.Languages != nil {
			var current []string
			if err := tx.Model(&models.Language{}).Where("portfolio_id = ?", id).Pluck("language", &current).Error; err != nil {
				return err
			}
			err := syncChildSet(tx, id, "language", current, upd.Languages, func(v string) models.Language {
				return models.Language{PortfolioID: id, Language: v}
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a portfolio and its children. Image rows are deleted
// explicitly before the portfolio row; the remaining children fall to the
// schema's cascade behavior.
func (r *PortfolioRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Portfolio{}, "id = ?", id).Error
	})
}
