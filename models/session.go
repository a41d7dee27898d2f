package models

import "time"

// Session is a server-side session row. The browser cookie carries only the
// signed SID; Data holds the JSON payload (user reference, flashes, stashed
// redirect URL). Expired rows are reclaimed by a periodic sweep, independent
// of the User lifecycle.
type Session struct {
	SID       string    `json:"sid" db:"sid" gorm:"column:sid;type:text;primaryKey;not null"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at" gorm:"not null;index:idx_sessions_expires_at"`
	Data      string    `json:"data" db:"data" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}
