// Package auth implements local-strategy credential handling: bcrypt hashing
// at registration, verification at login, and resolution of a session-carried
// user id back to a live account.
package auth

import (
	"strings"

	"github.com/folioshare/folioshare/database"
	"github.com/folioshare/folioshare/errs"
	"github.com/folioshare/folioshare/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash for storage. The plaintext is never
// persisted or logged.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Register creates a new account with a hashed password. A duplicate username
// surfaces as a conflict ApiErr, relying on the store-level uniqueness
// constraint rather than a pre-check.
func Register(users *database.UserRepo, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.NewValidationError("username", "username is required")
	}
	if password == "" {
		return nil, errs.NewValidationError("password", "password is required")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("hashing password", err)
	}

	user := models.User{Username: username, Password: hashed}
	if err := users.Add(&user); err != nil {
		if errs.IsUniqueViolation(err) {
			return nil, errs.NewAlreadyExists("username")
		}
		return nil, errs.NewDatabaseError("create", "user", err)
	}
	return &user, nil
}

// VerifyCredentials looks up the user by username and compares the plaintext
// against the stored hash. The failure is identical for an unknown username
// and a wrong password so callers cannot enumerate accounts.
func VerifyCredentials(users *database.UserRepo, username, password string) (*models.User, error) {
	user, err := users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewAuthFailure()
	}
	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return nil, errs.NewAuthFailure()
	}
	return user, nil
}

// ResolveUser maps a session-carried id back to a live user. A stale id
// resolves to (nil, nil): the request proceeds unauthenticated rather than
// failing.
func ResolveUser(users *database.UserRepo, id string) (*models.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return users.FindByID(parsed)
}
