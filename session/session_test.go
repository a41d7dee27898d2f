package session

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestManager(t *testing.T) (*Manager, *database.SessionRepo) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	repo := database.NewSessionRepo(db)
	return NewManager(repo, "test-secret", false), repo
}

func requestWithCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	return r
}

func TestSignVerifyRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	sid := uuid.NewString()
	signed := m.sign(sid)

	got, ok := m.verify(signed)
	assert.True(t, ok)
	assert.Equal(t, sid, got)
}

func TestVerifyRejectsTamperedCookie(t *testing.T) {
	m, _ := newTestManager(t)
	other := NewManager(nil, "other-secret", false)

	sid := uuid.NewString()

	_, ok := m.verify(sid + ".deadbeef")
	assert.False(t, ok)

	_, ok = m.verify(other.sign(sid))
	assert.False(t, ok)

	_, ok = m.verify("no-separator")
	assert.False(t, ok)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	state := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	state.SetUserID("user-1")
	state.AddFlash("success", "Logged in")

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, state))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	loaded := m.Load(requestWithCookie(cookies[0].Value))
	assert.Equal(t, "user-1", loaded.UserID())

	flashes := loaded.PopFlashes()
	require.Len(t, flashes, 1)
	assert.Equal(t, "Logged in", flashes[0].Message)

	// Flashes render exactly once.
	assert.Empty(t, loaded.PopFlashes())
}

// An untouched anonymous session must not leave a row behind.
func TestSaveSkipsUnchangedState(t *testing.T) {
	m, repo := newTestManager(t)

	state := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, state))

	assert.Empty(t, rec.Result().Cookies())

	row, err := repo.Find(state.sid)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestLoadDiscardsExpiredSession(t *testing.T) {
	m, repo := newTestManager(t)

	sid := uuid.NewString()
	require.NoError(t, repo.Save(&models.Session{
		SID:       sid,
		ExpiresAt: time.Now().Add(-time.Minute),
		Data:      `{"userId":"user-1"}`,
	}))

	state := m.Load(requestWithCookie(m.sign(sid)))
	assert.Empty(t, state.UserID())
	assert.NotEqual(t, sid, state.sid)
}

func TestDestroyRemovesRowAndExpiresCookie(t *testing.T) {
	m, repo := newTestManager(t)

	state := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	state.SetUserID("user-1")
	require.NoError(t, m.Save(httptest.NewRecorder(), state))

	rec := httptest.NewRecorder()
	require.NoError(t, m.Destroy(rec, state))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)

	row, err := repo.Find(state.sid)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestStashRedirectPopsOnce(t *testing.T) {
	state := &State{}
	state.StashRedirect("/portfolio/my")

	assert.Equal(t, "/portfolio/my", state.PopRedirect())
	assert.Empty(t, state.PopRedirect())
}
