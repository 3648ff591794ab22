package middleware

import (
	"net/http"

	"github.com/auth-flow-api/internal/domain"
)

// RoleSet is an explicit set of role names required to pass an
// authorization check.
type RoleSet map[string]struct{}

// Roles builds a RoleSet from role names.
func Roles(names ...string) RoleSet {
	s := make(RoleSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Authorize is the single authorization check: the account's current role
// must be a member of required. An empty set allows any authenticated
// account.
func Authorize(a *domain.Account, required RoleSet) error {
	if len(required) == 0 {
		return nil
	}
	if _, ok := required[a.Role]; !ok {
		return domain.E(domain.KindForbidden, "you do not have permission to access this resource")
	}
	return nil
}

// RequireRoles adapts Authorize to chi middleware. It must run after Auth.
func RequireRoles(required RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := AccountFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if err := Authorize(a, required); err != nil {
				writeJSONError(w, http.StatusForbidden, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
