package errors

// Error code constants, format CATEGORY_SPECIFIC_DETAIL. The frontend maps
// these codes to its own copy; Message is the Spanish fallback text.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized    = "AUTH_UNAUTHORIZED"      // login required
	AuthTokenExpired    = "AUTH_TOKEN_EXPIRED"     // token expired
	AuthTokenInvalid    = "AUTH_TOKEN_INVALID"     // malformed or forged token
	AuthTokenRevoked    = "AUTH_TOKEN_REVOKED"     // token was logged out
	AuthEmailNotAllowed = "AUTH_EMAIL_NOT_ALLOWED" // email not in the family allowlist

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // not the owner of the resource

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"

	// ==================== Wishes (WISH_) ====================
	WishNotFound      = "WISH_NOT_FOUND"
	WishTitleRequired = "WISH_TITLE_REQUIRED"

	// ==================== Assignments (ASSIGNMENT_) ====================
	AssignmentAlreadyAssigned = "ASSIGNMENT_ALREADY_ASSIGNED" // wish already claimed
	AssignmentSelfForbidden   = "ASSIGNMENT_SELF_FORBIDDEN"   // claiming your own wish

	// ==================== Surprise gifts (SURPRISE_) ====================
	SurpriseSelfForbidden     = "SURPRISE_SELF_FORBIDDEN" // gifting yourself
	SurpriseRecipientNotFound = "SURPRISE_RECIPIENT_NOT_FOUND"
	SurpriseTitleRequired     = "SURPRISE_TITLE_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
