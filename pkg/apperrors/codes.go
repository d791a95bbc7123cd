package apperrors

// ErrorCode is the machine-readable code exposed in error responses.
type ErrorCode string

const (
	// System and unknown failures.
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Generic business-logic codes.
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"

	// Authentication and authorization.
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	CodeTokenMissing       ErrorCode = "TOKEN_MISSING"
	CodeEmailNotVerified   ErrorCode = "EMAIL_NOT_VERIFIED"

	// Account management.
	CodeEmailExists  ErrorCode = "EMAIL_EXISTS"
	CodeWeakPassword ErrorCode = "WEAK_PASSWORD"
	CodeSelfDelete   ErrorCode = "SELF_DELETE_ERROR"
)
