package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOTPExpired_Boundaries(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt int64
		want      bool
	}{
		{"one second in the future", now.Unix() + 1, false},
		{"exactly now counts as expired", now.Unix(), true},
		{"one second in the past", now.Unix() - 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &OTP{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, o.Expired(now))
		})
	}
}

func TestOTPExpired_IgnoresSubSecondRemainder(t *testing.T) {
	// Expiry is stored at second granularity; a wall clock partway into
	// the expiry second already reads as expired.
	now := time.Date(2026, 9, 1, 12, 0, 0, 500_000_000, time.UTC)
	o := &OTP{ExpiresAt: now.Unix()}
	assert.True(t, o.Expired(now))
}
