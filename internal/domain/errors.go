package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrInvalidAccountKind = errors.New("invalid account kind")

	// Transaction errors
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")
	ErrNoFieldsToUpdate       = errors.New("no valid fields to update")
	ErrInvalidMonth           = errors.New("invalid month format, use YYYY-MM")

	// Transfer errors
	ErrSameAccount      = errors.New("cannot transfer to same account")
	ErrTransferNotFound = errors.New("transfer not found")

	// Category errors
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidCategoryKind = errors.New("invalid category kind")

	// Investment errors
	ErrInvalidInvestmentType = errors.New("unknown investment type")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("not allowed")

	// Access grant errors
	ErrAccessRequestNotFound = errors.New("access request not found or expired")
	ErrApprovalPending       = errors.New("owner approval pending")
	ErrCodeMismatch          = errors.New("invalid access code")
	ErrAttemptsExhausted     = errors.New("maximum attempts exceeded")

	// Share errors
	ErrShareCodeInvalid = errors.New("share code invalid or expired")
)
