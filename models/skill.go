package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is one skill value of a portfolio. The composite unique index gives
// the collection set semantics: no duplicate value per portfolio.
type Skill struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PortfolioID uuid.UUID `json:"portfolioId" db:"portfolio_id" gorm:"type:uuid;not null;index:idx_skills_portfolio_id;uniqueIndex:idx_skills_unique"`
	Skill       string    `json:"skill" db:"skill" gorm:"type:text;not null;uniqueIndex:idx_skills_unique"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
