package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an error class for clients and logs.
type ErrorCode string

const (
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"

	// Input errors
	ErrCodeMissingAddress ErrorCode = "MISSING_ADDRESS"
	ErrCodeMissingCode    ErrorCode = "MISSING_CODE"
	ErrCodeMalformedState ErrorCode = "MALFORMED_STATE"

	// Preconditions
	ErrCodeTipNotFound            ErrorCode = "TIP_NOT_FOUND"
	ErrCodeClaimRejected          ErrorCode = "CLAIM_REJECTED"
	ErrCodeVerificationInProgress ErrorCode = "VERIFICATION_IN_PROGRESS"

	// External services
	ErrCodeLedgerUnavailable ErrorCode = "LEDGER_UNAVAILABLE"
	ErrCodeIdentityProvider  ErrorCode = "IDENTITY_PROVIDER_ERROR"
	ErrCodeBroadcastFailed   ErrorCode = "BROADCAST_FAILED"
	ErrCodeLockUnavailable   ErrorCode = "LOCK_UNAVAILABLE"
)

// AppError is a typed application error.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsValidation reports caller input errors.
func (e *AppError) IsValidation() bool {
	switch e.Code {
	case ErrCodeBadRequest, ErrCodeMissingAddress, ErrCodeMissingCode, ErrCodeMalformedState:
		return true
	}
	return false
}

// IsRejection reports verification preconditions that were not met.
func (e *AppError) IsRejection() bool {
	switch e.Code {
	case ErrCodeTipNotFound, ErrCodeClaimRejected, ErrCodeVerificationInProgress:
		return true
	}
	return false
}

// IsExternal reports failures of a collaborating service.
func (e *AppError) IsExternal() bool {
	switch e.Code {
	case ErrCodeLedgerUnavailable, ErrCodeIdentityProvider, ErrCodeBroadcastFailed, ErrCodeLockUnavailable:
		return true
	}
	return false
}

// HTTPStatus maps the error code to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeBadRequest, ErrCodeMissingAddress, ErrCodeMissingCode, ErrCodeMalformedState, ErrCodeTipNotFound:
		return http.StatusBadRequest
	case ErrCodeClaimRejected:
		return http.StatusForbidden
	case ErrCodeVerificationInProgress:
		return http.StatusConflict
	case ErrCodeLedgerUnavailable, ErrCodeIdentityProvider, ErrCodeBroadcastFailed:
		return http.StatusBadGateway
	case ErrCodeLockUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithDetail attaches a detail field.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// New creates an application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// AsAppError finds an AppError in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err == nil || !stderrors.As(err, &appErr) {
		return nil, false
	}
	return appErr, true
}

// CodeOf returns the error code of err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}
