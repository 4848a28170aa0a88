package httputil

// Machine-readable error codes returned alongside error messages
const (
	CodeInternalError      = "INTERNAL_ERROR"
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeCooldownActive     = "COOLDOWN_ACTIVE"

	// Authentication
	CodeMissingAuth          = "MISSING_AUTH"
	CodeInvalidAuthHeader    = "INVALID_AUTH_HEADER"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeInvalidTokenUserID   = "INVALID_TOKEN_USER_ID"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeRefreshTokenRequired = "REFRESH_TOKEN_REQUIRED"
	CodeInvalidRefreshToken  = "INVALID_REFRESH_TOKEN"
	CodeInvalidResetToken    = "INVALID_RESET_TOKEN"

	// Registration
	CodeEmailRequired      = "EMAIL_REQUIRED"
	CodePasswordRequired   = "PASSWORD_REQUIRED"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodeInvalidEmailFormat = "INVALID_EMAIL_FORMAT"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"

	// Email verification
	CodeEmailNotVerified          = "EMAIL_NOT_VERIFIED"
	CodeVerificationTokenRequired = "VERIFICATION_TOKEN_REQUIRED"
	CodeVerificationFailed        = "VERIFICATION_FAILED"
	CodeAlreadyVerified           = "ALREADY_VERIFIED"

	// Gate
	CodeSessionPending      = "SESSION_PENDING"
	CodeOnboardingRequired  = "ONBOARDING_REQUIRED"
	CodeOnboardingCompleted = "ONBOARDING_COMPLETED"
	CodeInvalidGateLevel    = "INVALID_GATE_LEVEL"
	CodeDisplayNameRequired = "DISPLAY_NAME_REQUIRED"

	// Closet
	CodeInvalidCategory = "INVALID_CATEGORY"
	CodeItemNotFound    = "ITEM_NOT_FOUND"
	CodeInvalidItemID   = "INVALID_ITEM_ID"
)
