package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssuedBeforePasswordChange(t *testing.T) {
	changed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, IssuedBeforePasswordChange(nil, changed.Add(-time.Hour)),
		"no password change on record accepts any issue time")
	assert.True(t, IssuedBeforePasswordChange(&changed, changed.Add(-time.Second)))
	assert.False(t, IssuedBeforePasswordChange(&changed, changed),
		"a token issued at the exact change instant stays valid")
	assert.False(t, IssuedBeforePasswordChange(&changed, changed.Add(time.Second)))
}

func TestGuardPredicates(t *testing.T) {
	assert.True(t, (&Account{Status: StatusActive}).IsActive())
	assert.True(t, (&Account{Status: StatusBlocked}).IsBlocked())
	assert.True(t, (&Account{Status: StatusDeleted}).IsDeleted())
	assert.True(t, (&Account{Status: StatusInReview}).IsUnderReview())
	assert.True(t, (&Account{Status: StatusPending}).IsPending())
	assert.False(t, (&Account{Status: StatusPending}).IsActive())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleSuperAdmin))
	assert.False(t, ValidRole("root"))
	assert.False(t, ValidRole(""))
}
