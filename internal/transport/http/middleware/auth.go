package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/auth-flow-api/internal/domain"
	jwtinfra "github.com/auth-flow-api/internal/infrastructure/jwt"
)

type contextKey string

const (
	ClaimsKey  contextKey = "claims"
	AccountKey contextKey = "account"
)

type tokenVerifier interface {
	Verify(token string, purpose jwtinfra.Purpose) (*jwtinfra.Claims, error)
}

type accountLoader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// Auth returns middleware that validates the Bearer access token, re-checks
// the account's current state, and injects claims into the request context.
//
// The account is re-read on every request so a block, delete, review hold,
// or password change applied after token issuance takes effect immediately.
func Auth(tokens tokenVerifier, accounts accountLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "authorization token is missing")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tokens.Verify(tokenStr, jwtinfra.PurposeAccess)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			a, err := accounts.GetByEmail(r.Context(), claims.Email)
			if err != nil {
				writeJSONError(w, http.StatusNotFound, "account not found")
				return
			}
			if gateErr := GateAccount(a); gateErr != nil {
				writeJSONError(w, domain.KindOf(gateErr).HTTPStatus(), gateErr.Error())
				return
			}
			if claims.IssuedAt != nil && domain.IssuedBeforePasswordChange(a.PasswordChangedAt, claims.IssuedAt.Time) {
				writeJSONError(w, http.StatusUnauthorized, "token has expired, please log in again")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			ctx = context.WithValue(ctx, AccountKey, a)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GateAccount is the full per-request state gate, applied in severity order:
// blocked, deleted, unverified, under review, not active.
func GateAccount(a *domain.Account) error {
	if a.IsBlocked() {
		return domain.E(domain.KindForbidden, "your account has been blocked")
	}
	if a.IsDeleted() {
		return domain.E(domain.KindGone, "your account has been deleted")
	}
	if !a.OTPVerified {
		return domain.E(domain.KindForbidden, "please verify your account")
	}
	if a.IsUnderReview() {
		return domain.E(domain.KindForbidden, "your account is under review")
	}
	if !a.IsActive() {
		return domain.E(domain.KindForbidden, "your account is not active")
	}
	return nil
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}

// AccountFromContext extracts the freshly loaded account placed in the
// context by Auth.
func AccountFromContext(ctx context.Context) (*domain.Account, bool) {
	a, ok := ctx.Value(AccountKey).(*domain.Account)
	return a, ok
}
