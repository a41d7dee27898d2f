package database

import (
	"errors"
	"time"

	"github.com/folioshare/folioshare/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db}
}

// Find returns the session row for sid, or nil when it does not exist or has
// already expired.
func (r *SessionRepo) Find(sid string) (*models.Session, error) {
	var session models.Session
	err := r.db.First(&session, "sid = ?", sid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return &session, nil
}

// Save upserts a session row keyed by sid.
func (r *SessionRepo) Save(session *models.Session) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sid"}},
		DoUpdates: clause.AssignmentColumns([]string{"expires_at", "data", "updated_at"}),
	}).Create(session).Error
}

// Delete removes a session row.
func (r *SessionRepo) Delete(sid string) error {
	return r.db.Delete(&models.Session{}, "sid = ?", sid).Error
}

// DeleteExpired reclaims all sessions that expired before now and reports how
// many rows were removed.
func (r *SessionRepo) DeleteExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
