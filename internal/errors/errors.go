package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBookNotFound is returned when a book is not found.
	ErrBookNotFound = errors.New("book not found")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInsufficientStock is returned when the ordered quantity exceeds stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderNotCancellable is returned when cancelling a non-pending order.
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")
	// ErrNotOwner is returned when a user acts on another user's order.
	ErrNotOwner = errors.New("order belongs to another user")
	// ErrInvalidQuantity is returned when the ordered quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidBookInput is returned when book fields fail validation.
	ErrInvalidBookInput = errors.New("invalid book data")
	// ErrEmailTaken is returned when an email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Is is errors.Is, re-exported so callers that alias this package over the
// standard library need not import both.
var Is = errors.Is

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOK_NOT_FOUND")
	case errors.Is(err, ErrOrderNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case errors.Is(err, ErrInsufficientStock):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_STOCK")
	case errors.Is(err, ErrOrderNotCancellable):
		return NewHTTPError(http.StatusConflict, err.Error(), "ORDER_NOT_CANCELLABLE")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_ORDER_OWNER")
	case errors.Is(err, ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	case errors.Is(err, ErrInvalidBookInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_BOOK_DATA")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
