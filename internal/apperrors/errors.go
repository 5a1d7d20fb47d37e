package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or name does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not
	// exist or is owned by another user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCategoryNotFound indicates that a category with the given ID does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrBadgeNotFound indicates that a badge with the given ID does not exist.
	ErrBadgeNotFound = errors.New("badge not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrUsernameTaken indicates that another account already uses the username.
	ErrUsernameTaken = errors.New("Username already exists")

	// ErrEmailTaken indicates that another account already uses the email address.
	ErrEmailTaken = errors.New("Email already exists")

	// ErrInvalidCredentials indicates a failed login. It never says which part was wrong.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrInvalidCategory indicates that a category is malformed or may not be used
	// by the requesting user.
	ErrInvalidCategory = errors.New("Invalid category")

	// ErrPasswordMismatch indicates that a new password and its confirmation differ.
	ErrPasswordMismatch = errors.New("Passwords do not match")

	// ErrUnauthorized indicates a missing, expired or forged session.
	ErrUnauthorized = errors.New("authentication required")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveCategories   = errors.New("failed to retrieve categories")
	ErrFailedToRetrieveActivities   = errors.New("failed to retrieve activities")
	ErrFailedToRetrieveBadges       = errors.New("failed to retrieve badges")
	ErrFailedToRetrieveTips         = errors.New("failed to retrieve tips")
	ErrFailedToBuildDashboard       = errors.New("failed to build dashboard")
	ErrFailedToExport               = errors.New("failed to export transactions")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)
