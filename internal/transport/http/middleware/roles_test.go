package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth-flow-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func requestWithAccount(role string) *http.Request {
	a := &domain.Account{AccountID: "a1", Role: role, Status: domain.StatusActive, OTPVerified: true}
	ctx := context.WithValue(context.Background(), AccountKey, a)
	return httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
}

func TestRequireRoles_NoAccountInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	RequireRoles(Roles(domain.RoleAdmin))(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRoles_WrongRole(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireRoles(Roles(domain.RoleAdmin))(http.HandlerFunc(okHandler)).ServeHTTP(rr, requestWithAccount(domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRoles_MemberRole(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireRoles(Roles(domain.RoleAdmin, domain.RoleSuperAdmin))(http.HandlerFunc(okHandler)).ServeHTTP(rr, requestWithAccount(domain.RoleSuperAdmin))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthorize_EmptySetAllowsAnyRole(t *testing.T) {
	a := &domain.Account{Role: domain.RoleUser}
	assert.NoError(t, Authorize(a, nil))
	assert.NoError(t, Authorize(a, Roles()))
}

func TestAuthorize_Forbidden(t *testing.T) {
	a := &domain.Account{Role: domain.RoleUser}
	err := Authorize(a, Roles(domain.RoleAdmin))
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}
