package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Identity errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Lookup errors
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodePropertyNotFound    ErrorCode = "PROPERTY_NOT_FOUND"
	ErrCodeReservationNotFound ErrorCode = "RESERVATION_NOT_FOUND"
	ErrCodeCustomerNotFound    ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodeImageNotFound       ErrorCode = "IMAGE_NOT_FOUND"

	// Booking errors
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeDateConflict     ErrorCode = "DATE_CONFLICT"
	ErrCodeInvalidRange     ErrorCode = "INVALID_RANGE"

	// Database errors
	ErrCodeDBError  ErrorCode = "DB_ERROR"
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Upload errors
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"

	// Contention
	ErrCodeLockTimeout ErrorCode = "LOCK_TIMEOUT"
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("number of guests exceeds property capacity")
	ErrDateConflict     = errors.New("date range conflicts with an existing reservation")
	ErrInvalidRange     = errors.New("end date must be after start date")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is, or wraps, an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the outermost AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func NotFound(code ErrorCode, message string) *AppError {
	return NewAppError(code, message, ErrNotFound)
}

func CapacityExceeded(guests, capacity int) *AppError {
	return NewAppError(ErrCodeCapacityExceeded,
		fmt.Sprintf("The number of guests (%d) is more than available (%d)", guests, capacity),
		ErrCapacityExceeded)
}

func DateConflict(message string) *AppError {
	if message == "" {
		message = "The chosen date is unavailable for this property, please choose another date"
	}
	return NewAppError(ErrCodeDateConflict, message, ErrDateConflict)
}

func InvalidRange(message string) *AppError {
	return NewAppError(ErrCodeInvalidRange, message, ErrInvalidRange)
}

func Validation(code ErrorCode, message string) *AppError {
	return NewAppError(code, message, ErrInvalidInput)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, ErrForbidden)
}

// Database wraps an unexpected persistence failure.
func Database(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

// Is, As and New mirror the standard errors package.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func New(text string) error { return errors.New(text) }
