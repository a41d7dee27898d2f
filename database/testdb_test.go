package database

import (
	"fmt"
	"testing"

	"github.com/folioshare/folioshare/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a uniquely named in-memory sqlite database with foreign
// keys enabled and the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{Username: username, Password: []byte("$2a$10$hash")}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedPortfolio(t *testing.T, repo *PortfolioRepo, owner *models.User, skills, languages []string) *models.Portfolio {
	t.Helper()

	portfolio := models.Portfolio{
		UserID:      owner.ID,
		Name:        "Jane Doe",
		DescribeYou: "Backend engineer",
		Description: "Ten years of systems work.",
		Contact:     &models.Contact{Contact: "555-0100", Gmail: "jane@example.com", Address: "Springfield"},
		Education:   &models.Education{Course: "CS", Institute: "State University"},
		Interest:    &models.Interest{Interest: "distributed systems"},
	}
	for _, s := range skills {
		portfolio.Skills = append(portfolio.Skills, models.Skill{Skill: s})
	}
	for _, l := range languages {
		portfolio.Languages = append(portfolio.Languages, models.Language{Language: l})
	}
	require.NoError(t, repo.CreateWithChildren(&portfolio))
	return &portfolio
}
