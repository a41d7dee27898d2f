package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image is the uploaded picture of a portfolio. The unique index on
// PortfolioID enforces one active image per portfolio and keys the upsert
// performed on update.
type Image struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PortfolioID uuid.UUID `json:"portfolioId" db:"portfolio_id" gorm:"type:uuid;not null;uniqueIndex:idx_images_portfolio_id"`
	UserID      uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index:idx_images_user_id"`
	ImageURL    string    `json:"imageUrl" db:"image_url" gorm:"type:text;not null"`
	ImageName   string    `json:"imageName" db:"image_name" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
