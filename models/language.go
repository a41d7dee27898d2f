package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Language is one language value of a portfolio, with the same set semantics
// as Skill.
type Language struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PortfolioID uuid.UUID `json:"portfolioId" db:"portfolio_id" gorm:"type:uuid;not null;index:idx_languages_portfolio_id;uniqueIndex:idx_languages_unique"`
	Language    string    `json:"language" db:"language" gorm:"type:text;not null;uniqueIndex:idx_languages_unique"`
}

func (l *Language) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
