package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignupOTP(t *testing.T) {
	r := SignupOTP(OTPData{
		Name:        "Ada",
		Code:        "123456",
		CompanyName: "Auth Flow",
		Expiry:      5 * time.Minute,
	})

	assert.Equal(t, "Your OTP for Account Verification", r.Subject)
	assert.Contains(t, r.HTML, "123456")
	assert.Contains(t, r.HTML, "Hi Ada")
	assert.Contains(t, r.HTML, "5 minutes")
	assert.Contains(t, r.Text, "123456")
}

func TestResetOTP(t *testing.T) {
	r := ResetOTP(OTPData{
		Name:        "Ada",
		Code:        "654321",
		CompanyName: "Auth Flow",
		Expiry:      10 * time.Minute,
	})

	assert.Equal(t, "Your Password Reset Code", r.Subject)
	assert.Contains(t, r.HTML, "Reset your password")
	assert.Contains(t, r.HTML, "654321")
	assert.Contains(t, r.Text, "654321")
}

func TestRenderOTP_MissingName_Fallback(t *testing.T) {
	r := SignupOTP(OTPData{Code: "123456", CompanyName: "Auth Flow", Expiry: time.Minute})
	assert.Contains(t, r.Text, "Hi there")
}

func TestRenderOTP_EscapesHTMLInName(t *testing.T) {
	r := SignupOTP(OTPData{
		Name:        "<script>alert(1)</script>",
		Code:        "123456",
		CompanyName: "Auth Flow",
		Expiry:      time.Minute,
	})
	assert.NotContains(t, r.HTML, "<script>")
}

func TestRenderOTP_SubMinuteExpiry_RoundsUp(t *testing.T) {
	r := SignupOTP(OTPData{Name: "Ada", Code: "123456", CompanyName: "Auth Flow", Expiry: 20 * time.Second})
	assert.Contains(t, r.Text, "1 minute")
}
