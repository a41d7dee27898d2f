package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact holds the single contact card of a portfolio. The unique index on
// PortfolioID gives the 1:1 relation its upsert key.
type Contact struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PortfolioID uuid.UUID `json:"portfolioId" db:"portfolio_id" gorm:"type:uuid;not null;uniqueIndex:idx_contacts_portfolio_id"`
	Contact     string    `json:"contact" db:"contact" gorm:"type:text"`
	Gmail       string    `json:"gmail" db:"gmail" gorm:"type:text"`
	Address     string    `json:"address" db:"address" gorm:"type:text"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
