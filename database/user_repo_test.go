package database

import (
	"testing"

	"github.com/folioshare/folioshare/errs"
	"github.com/folioshare/folioshare/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	user := seedUser(t, db, "jane")

	byName, err := repo.FindByUsername("jane")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "jane", byID.Username)

	missing, err := repo.FindByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDuplicateUsernameRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	seedUser(t, db, "jane")

	err := repo.Add(&models.User{Username: "jane", Password: []byte("hash")})
	require.Error(t, err)
	assert.True(t, errs.IsUniqueViolation(err))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
