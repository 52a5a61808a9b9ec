package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/rpcproxy"
	"github.com/lampworks/moth-bridge/internal/session"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeNotOwned         ErrorCode = "not_owned"
	ErrCodeSuperseded       ErrorCode = "superseded"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeUpstreamError ErrorCode = "upstream_error"
	ErrCodeWalletError   ErrorCode = "wallet_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewNotOwnedError(details ...string) *APIError {
	return &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    ErrCodeNotOwned,
		Message: "Token is not owned by this address",
		Details: strings.Join(details, ", "),
	}
}

func NewSupersededError(details ...string) *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Code:    ErrCodeSuperseded,
		Message: "A newer scan replaced this one",
		Details: strings.Join(details, ", "),
	}
}

func NewUpstreamError(message string, details ...string) *APIError {
	return &APIError{
		Status:  http.StatusBadGateway,
		Code:    ErrCodeUpstreamError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromError maps domain failures onto API errors; unknown errors become internal errors
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return NewValidationError(err.Error())
	case errors.Is(err, domain.ErrNotOwned):
		return NewNotOwnedError(err.Error())
	case errors.Is(err, domain.ErrSuperseded):
		return NewSupersededError()
	case errors.Is(err, domain.ErrUnknownChain):
		return NewBadRequestError("Unknown chain", err.Error())
	case errors.Is(err, domain.ErrEndpointUnavailable),
		errors.Is(err, domain.ErrVerificationFailure),
		errors.Is(err, rpcproxy.ErrUpstreamUnavailable):
		return NewUpstreamError("Chain endpoint unavailable", err.Error())
	case errors.Is(err, domain.ErrWalletRejected),
		errors.Is(err, session.ErrNotConnected),
		errors.Is(err, session.ErrNoAccounts):
		return &APIError{
			Status:  http.StatusInternalServerError,
			Code:    ErrCodeWalletError,
			Message: "Wallet session failed",
			Details: err.Error(),
		}
	default:
		return NewInternalError("Internal server error")
	}
}
