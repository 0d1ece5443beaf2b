package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTradeNotFound indicates that a trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrTransferNotFound indicates that a capital transfer with the given ID does not exist.
	ErrTransferNotFound = errors.New("transfer not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrTradeAlreadyClosed indicates that a close was requested for a trade that is
	// already closed. A trade transitions to closed exactly once.
	ErrTradeAlreadyClosed = errors.New("trade is already closed")

	// ErrInvalidStatus indicates an unknown trade status filter or value.
	ErrInvalidStatus = errors.New("invalid trade status")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTrades    = errors.New("failed to retrieve trades")
	ErrFailedToRetrieveTrade     = errors.New("failed to retrieve trade")
	ErrFailedToRetrieveTransfers = errors.New("failed to retrieve transfers")
	ErrFailedToRetrieveTransfer  = errors.New("failed to retrieve transfer")
	ErrFailedToGetSummary        = errors.New("failed to get metrics summary")
	ErrFailedToGetHistory        = errors.New("failed to get metrics history")
	ErrFailedToCreateSnapshot    = errors.New("failed to create metrics snapshot")
	ErrFailedToGetVersionInfo    = errors.New("failed to get version information")
)
