package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Education is the single education record of a portfolio (1:1, upsert keyed
// by PortfolioID).
type Education struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PortfolioID uuid.UUID `json:"portfolioId" db:"portfolio_id" gorm:"type:uuid;not null;uniqueIndex:idx_educations_portfolio_id"`
	Course      string    `json:"course" db:"course" gorm:"type:text"`
	Institute   string    `json:"institute" db:"institute" gorm:"type:text"`
}

func (e *Education) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
