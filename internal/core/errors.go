// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Trade errors
	ErrTradeNotFound = &Error{Code: "TRADE_NOT_FOUND", Message: "trade not found"}
	ErrInvalidTrade  = &Error{Code: "INVALID_TRADE", Message: "invalid trade"}
	ErrNoTrades      = &Error{Code: "NO_TRADES", Message: "no trades available"}

	// Query errors
	ErrInvalidQuery = &Error{Code: "INVALID_QUERY", Message: "invalid query"}

	// Storage errors
	ErrStorageFailed = &Error{Code: "STORAGE_FAILED", Message: "storage operation failed"}
	ErrArchiveFailed = &Error{Code: "ARCHIVE_FAILED", Message: "report archive failed"}

	// Import errors
	ErrImportFailed = &Error{Code: "IMPORT_FAILED", Message: "trade import failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// LLM errors
	ErrLLMFailed = &Error{Code: "LLM_FAILED", Message: "LLM request failed"}
)
