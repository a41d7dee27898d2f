package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interest is the single interest blurb of a portfolio (1:1, upsert keyed by
// PortfolioID).
type Interest struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PortfolioID uuid.UUID `json:"portfolioId" db:"portfolio_id" gorm:"type:uuid;not null;uniqueIndex:idx_interests_portfolio_id"`
	Interest    string    `json:"interest" db:"interest" gorm:"type:text"`
}

func (i *Interest) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
