package apperrors

import (
	"net/http"
)

// Factories for wrapping repository-level errors.

func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Auth ---

// ErrEmailAlreadyExists is returned from registration when the email is
// already taken. Returned as 400 so the client treats it as a form error.
var ErrEmailAlreadyExists = New(
	CodeEmailExists,
	"auth",
	"Email already in use",
	http.StatusBadRequest,
)

// ErrWeakPassword carries the list of unmet policy rules in Details.
var ErrWeakPassword = New(
	CodeWeakPassword,
	"auth",
	"Password does not meet security requirements",
	http.StatusBadRequest,
)

// ErrInvalidCredentials is deliberately identical for an unknown email and
// a wrong password.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrTokenMissing = New(
	CodeTokenMissing,
	"auth",
	"Authentication token is missing",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Authentication token has expired",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid authentication token",
	http.StatusUnauthorized,
)

// ErrInvalidRefreshToken covers missing, unknown, expired and superseded
// refresh tokens alike.
var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired refresh token",
	http.StatusUnauthorized,
)

var ErrEmailNotVerified = New(
	CodeEmailNotVerified,
	"auth",
	"Your account is pending approval",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Users ---

var ErrUserNotFound = New(
	CodeNotFound,
	"users",
	"User not found",
	http.StatusNotFound,
)

// ErrSelfDelete guards an admin against removing their own account.
var ErrSelfDelete = New(
	CodeSelfDelete,
	"users",
	"You cannot delete your own account",
	http.StatusBadRequest,
)

var ErrInvalidUserRole = New(
	CodeValidationFailed,
	"users",
	"Invalid user role",
	http.StatusBadRequest,
)

// --- Customers ---

var ErrCustomerNotFound = New(
	CodeNotFound,
	"customers",
	"Customer not found",
	http.StatusNotFound,
)

// --- Leads ---

var ErrLeadNotFound = New(
	CodeNotFound,
	"leads",
	"Lead not found",
	http.StatusNotFound,
)
