package domain

import "time"

// Account lifecycle statuses. Pending accounts have signed up but not yet
// verified their OTP; only OTP verification moves an account to active.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusBlocked  = "blocked"
	StatusDeleted  = "deleted"
	StatusInReview = "in_review"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type Account struct {
	AccountID         string     `json:"id" dynamodbav:"account_id"`
	Name              string     `json:"name" dynamodbav:"name"`
	Email             string     `json:"email" dynamodbav:"email"`
	PasswordHash      string     `json:"-" dynamodbav:"password_hash"`
	Status            string     `json:"status" dynamodbav:"status"`
	Role              string     `json:"role" dynamodbav:"role"`
	ProfileImage      string     `json:"profile_image,omitempty" dynamodbav:"profile_image"`
	OTPVerified       bool       `json:"otp_verified" dynamodbav:"otp_verified"`
	TwoFactorEnabled  bool       `json:"two_factor_enabled" dynamodbav:"two_factor_enabled"`
	TwoFactorSecret   string     `json:"-" dynamodbav:"two_factor_secret"`
	BlockedReason     string     `json:"blocked_reason,omitempty" dynamodbav:"blocked_reason"`
	DeletionReason    string     `json:"deletion_reason,omitempty" dynamodbav:"deletion_reason"`
	BlockedAt         *time.Time `json:"blocked_at,omitempty" dynamodbav:"blocked_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	PasswordChangedAt *time.Time `json:"-" dynamodbav:"password_changed_at"`
	CreatedAt         time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// Guard predicates. Flows gate on these in a fixed order (blocked, deleted,
// verification, in_review, active) so an account in several bad states
// always reports the most severe one.

func (a *Account) IsActive() bool      { return a.Status == StatusActive }
func (a *Account) IsBlocked() bool     { return a.Status == StatusBlocked }
func (a *Account) IsDeleted() bool     { return a.Status == StatusDeleted }
func (a *Account) IsUnderReview() bool { return a.Status == StatusInReview }
func (a *Account) IsPending() bool     { return a.Status == StatusPending }

// IssuedBeforePasswordChange reports whether a token issued at issuedAt
// predates the account's last password change. Accounts that never changed
// their password accept any issue time.
func IssuedBeforePasswordChange(passwordChangedAt *time.Time, issuedAt time.Time) bool {
	if passwordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*passwordChangedAt)
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type UpdateAccountRequest struct {
	Name         *string `json:"name"`
	ProfileImage *string `json:"profile_image"`
}
