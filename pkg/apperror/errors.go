package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
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

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Signature & Authenticity (SIG) ----

func ErrInvalidSignature() *AppError {
	return New("SIG_001", "Invalid signature", http.StatusUnauthorized)
}

func ErrMissingSignature() *AppError {
	return New("SIG_002", "Missing signature header", http.StatusUnauthorized)
}

// ErrKeyUnavailable signals the verification key could not be fetched.
// Returned as 500 so the provider redelivers once the key is fetchable again.
func ErrKeyUnavailable(err error) *AppError {
	return Wrap("SIG_003", "Verification key unavailable", http.StatusInternalServerError, err)
}

func ErrOperatorUnauthorized() *AppError {
	return New("SIG_004", "Invalid operator secret", http.StatusUnauthorized)
}

// ---- Payload Validation (VAL) ----

func ErrMalformedPayload(err error) *AppError {
	return Wrap("VAL_001", "Malformed webhook payload", http.StatusBadRequest, err)
}

func ErrMissingReference() *AppError {
	return New("VAL_002", "Payload missing order reference", http.StatusBadRequest)
}

func ErrUnknownProvider(provider string) *AppError {
	return New("VAL_003", fmt.Sprintf("Unknown payment provider: %s", provider), http.StatusBadRequest)
}

// ---- Upstream / Transient (UP) ----

func ErrStoreUnavailable(err error) *AppError {
	return Wrap("UP_001", "Order store unavailable", http.StatusInternalServerError, err)
}

func ErrSendFailed(err error) *AppError {
	return Wrap("UP_002", "Notification send failed", http.StatusInternalServerError, err)
}

// ---- Notification Dispatch (NTF) ----

// ErrUnknownProduct is fail-closed: no send is attempted and the order
// stays PAID for operator follow-up.
func ErrUnknownProduct(productID string) *AppError {
	return New("NTF_001", fmt.Sprintf("Unknown product: %s", productID), http.StatusUnprocessableEntity)
}

func ErrOrderNotPaid(status string) *AppError {
	return New("NTF_002", fmt.Sprintf("Order status is %s, not PAID", status), http.StatusConflict)
}

func ErrOrderNotFound() *AppError {
	return New("NTF_003", "Order not found", http.StatusNotFound)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
