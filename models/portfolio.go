package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portfolio is a user-authored resume page with nested contact, education,
// interest, skill, language and image records.
type Portfolio struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID      uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index:idx_portfolios_user_id"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	DescribeYou string    `json:"describeYou" db:"describe_you" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`

	User      User       `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Contact   *Contact   `json:"contact,omitempty" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
	Education *Education `json:"education,omitempty" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
	Interest  *Interest  `json:"interest,omitempty" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
	Skills    []Skill    `json:"skills,omitempty" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
	Languages []Language `json:"languages,omitempty" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
	Images    []Image    `json:"images,omitempty" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
	Likes     []Like     `json:"likes,omitempty" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
