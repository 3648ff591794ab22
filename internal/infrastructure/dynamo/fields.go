package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	FieldName              = "name"
	FieldProfileImage      = "profile_image"
	FieldStatus            = "status"
	FieldOTPVerified       = "otp_verified"
	FieldPasswordHash      = "password_hash"
	FieldPasswordChangedAt = "password_changed_at"
	FieldBlockedAt         = "blocked_at"
	FieldBlockedReason     = "blocked_reason"
	FieldDeletedAt         = "deleted_at"
	FieldDeletionReason    = "deletion_reason"
	FieldEnable            = "enable"
	FieldUpdatedAt         = "updated_at"
)
