package api

import (
	"context"

	"github.com/folioshare/folioshare/models"
	"github.com/folioshare/folioshare/session"
)

type keyType string

const (
	sessionKey   keyType = "session"
	userKey      keyType = "user"
	portfolioKey keyType = "portfolio"
)

// ctxWithSession attaches the request's session state to the context
func ctxWithSession(ctx context.Context, state *session.State) context.Context {
	return context.WithValue(ctx, sessionKey, state)
}

// sessionFrom retrieves the session state; every route below the session
// middleware has one.
func sessionFrom(ctx context.Context) *session.State {
	state, _ := ctx.Value(sessionKey).(*session.State)
	return state
}

// ctxWithUser attaches the resolved current user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// userFrom retrieves the current user, or nil for anonymous requests.
func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// ctxWithPortfolio attaches the portfolio loaded by the ownership guard so
// handlers do not reload it.
func ctxWithPortfolio(ctx context.Context, portfolio *models.Portfolio) context.Context {
	return context.WithValue(ctx, portfolioKey, portfolio)
}

func portfolioFrom(ctx context.Context) *models.Portfolio {
	portfolio, _ := ctx.Value(portfolioKey).(*models.Portfolio)
	return portfolio
}
