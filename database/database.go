package database

import (
	"github.com/folioshare/folioshare/models"
	"gorm.io/gorm"
)

type Database struct {
	userRepo      *UserRepo
	portfolioRepo *PortfolioRepo
	likeRepo      *LikeRepo
	sessionRepo   *SessionRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:      NewUserRepo(db),
		portfolioRepo: NewPortfolioRepo(db),
		likeRepo:      NewLikeRepo(db),
		sessionRepo:   NewSessionRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) PortfolioRepo() *PortfolioRepo {
	return d.portfolioRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) SessionRepo() *SessionRepo {
	return d.sessionRepo
}

// AutoMigrate creates or updates the schema for every entity. Order matters:
// parents before children so foreign keys can be applied.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Portfolio{},
		&models.Contact{},
		&models.Education{},
		&models.Interest{},
		&models.Skill{},
		&models.Language{},
		&models.Image{},
		&models.Like{},
		&models.Session{},
	)
}
