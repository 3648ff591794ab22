package domain

import "time"

// OTP purposes. An account holds at most one live code per purpose; the
// (account_id, purpose) pair is the storage key.
const (
	OTPPurposeSignup = "signup"
	OTPPurposeReset  = "reset"
)

// OTP is a single-use numeric code scoped to one account and one purpose.
// ExpiresAt is Unix seconds and doubles as the DynamoDB TTL attribute, so
// stale rows eventually vanish even when never consumed or replaced.
type OTP struct {
	AccountID string    `json:"account_id" dynamodbav:"account_id"`
	Purpose   string    `json:"purpose" dynamodbav:"purpose"`
	Code      string    `json:"-" dynamodbav:"code"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (o *OTP) Expired(now time.Time) bool {
	return o.ExpiresAt <= now.Unix()
}
