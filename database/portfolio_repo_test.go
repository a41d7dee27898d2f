package database

import (
	"testing"

	"github.com/folioshare/folioshare/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithChildrenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)
	owner := seedUser(t, db, "jane")

	created := seedPortfolio(t, repo, owner, []string{"go", "sql", "docker"}, []string{"english", "spanish"})
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "Jane Doe", found.Name)
	assert.Equal(t, "Backend engineer", found.DescribeYou)
	assert.Equal(t, owner.ID, found.UserID)

	require.NotNil(t, found.Contact)
	assert.Equal(t, "jane@example.com", found.Contact.Gmail)
	require.NotNil(t, found.Education)
	assert.Equal(t, "State University", found.Education.Institute)
	require.NotNil(t, found.Interest)
	assert.Equal(t, "distributed systems", found.Interest.Interest)

	var skills []string
	for _, s := range found.Skills {
		skills = append(skills, s.Skill)
	}
	assert.ElementsMatch(t, []string{"go", "sql", "docker"}, skills)

	var languages []string
	for _, l := range found.Languages {
		languages = append(languages, l.Language)
	}
	assert.ElementsMatch(t, []string{"english", "spanish"}, languages)
}

func TestFindByIDUnknownReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)

	found, err := repo.FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUpdateScalarsUnknownPortfolio(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)

	err := repo.Update(uuid.New(), PortfolioUpdate{Name: "x", Description: "y"})
	require.Error(t, err)
}

// Updating the skill set must only touch the rows that actually changed:
// surviving values keep their primary keys.
func TestUpdateReconcilesSkillSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)
	owner := seedUser(t, db, "jane")
	created := seedPortfolio(t, repo, owner, []string{"a", "b", "c"}, nil)

	var before []models.Skill
	require.NoError(t, db.Where("portfolio_id = ?", created.ID).Find(&before).Error)
	surviving := map[string]uuid.UUID{}
	for _, s := range before {
		if s.Skill == "b" || s.Skill == "c" {
			surviving[s.Skill] = s.ID
		}
	}
	require.Len(t, surviving, 2)

	err := repo.Update(created.ID, PortfolioUpdate{
		Name:        created.Name,
		Description: created.Description,
		Skills:      []string{"b", "c", "d"},
	})
	require.NoError(t, err)

	var after []models.Skill
	require.NoError(t, db.Where("portfolio_id = ?", created.ID).Find(&after).Error)
	require.Len(t, after, 3)

	values := map[string]uuid.UUID{}
	for _, s := range after {
		values[s.Skill] = s.ID
	}
	assert.NotContains(t, values, "a")
	assert.Contains(t, values, "d")
	assert.Equal(t, surviving["b"], values["b"])
	assert.Equal(t, surviving["c"], values["c"])
}

// A nil slice on the update leaves the child set untouched.
func TestUpdateNilSliceLeavesChildrenAlone(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)
	owner := seedUser(t, db, "jane")
	created := seedPortfolio(t, repo, owner, []string{"go"}, []string{"english"})

	err := repo.Update(created.ID, PortfolioUpdate{
		Name:        "New Name",
		Description: created.Description,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.Name)
	assert.Len(t, found.Skills, 1)
	assert.Len(t, found.Languages, 1)
}

func TestUpdateUpsertsContact(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)
	owner := seedUser(t, db, "jane")
	created := seedPortfolio(t, repo, owner, nil, nil)

	err := repo.Update(created.ID, PortfolioUpdate{
		Name:        created.Name,
		Description: created.Description,
		Contact:     &ContactUpdate{Contact: "555-0199", Gmail: "new@example.com", Address: "Shelbyville"},
	})
	require.NoError(t, err)

	var contacts []models.Contact
	require.NoError(t, db.Where("portfolio_id = ?", created.ID).Find(&contacts).Error)
	require.Len(t, contacts, 1)
	assert.Equal(t, "new@example.com", contacts[0].Gmail)
	assert.Equal(t, "Shelbyville", contacts[0].Address)
}

func TestUpdateInsertsImageWhenMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)
	owner := seedUser(t, db, "jane")
	created := seedPortfolio(t, repo, owner, nil, nil)

	upd := PortfolioUpdate{
		Name:        created.Name,
		Description: created.Description,
		Image:       &ImageUpdate{URL: "/uploads/1-a.png", Name: "a.png", UserID: owner.ID},
	}
	require.NoError(t, repo.Update(created.ID, upd))

	// A second image update replaces, never duplicates.
	upd.Image = &ImageUpdate{URL: "/uploads/2-b.png", Name: "b.png", UserID: owner.ID}
	require.NoError(t, repo.Update(created.ID, upd))

	var images []models.Image
	require.NoError(t, db.Where("portfolio_id = ?", created.ID).Find(&images).Error)
	require.Len(t, images, 1)
	assert.Equal(t, "/uploads/2-b.png", images[0].ImageURL)
}

func TestDeleteRemovesPortfolioAndImages(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)
	owner := seedUser(t, db, "jane")
	created := seedPortfolio(t, repo, owner, []string{"go"}, nil)

	image := models.Image{PortfolioID: created.ID, UserID: owner.ID, ImageURL: "/uploads/1-a.png", ImageName: "a.png"}
	require.NoError(t, db.Create(&image).Error)

	require.NoError(t, repo.Delete(created.ID))

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	var imageCount int64
	require.NoError(t, db.Model(&models.Image{}).Where("portfolio_id = ?", created.ID).Count(&imageCount).Error)
	assert.Zero(t, imageCount)
}

func TestFindAllByUserScopesToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewPortfolioRepo(db)
	jane := seedUser(t, db, "jane")
	john := seedUser(t, db, "john")

	seedPortfolio(t, repo, jane, nil, nil)
	seedPortfolio(t, repo, jane, nil, nil)
	seedPortfolio(t, repo, john, nil, nil)

	mine, err := repo.FindAllByUser(jane.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
