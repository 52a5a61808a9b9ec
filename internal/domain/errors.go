package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEndpointUnavailable is returned when height, log or balance queries fail
	ErrEndpointUnavailable = errors.New("endpoint unavailable")

	// ErrCapabilityAbsent is returned when the contract lacks the enumeration extension
	ErrCapabilityAbsent = errors.New("capability absent")

	// ErrVerificationFailure is returned when a single ownership check cannot complete
	ErrVerificationFailure = errors.New("verification failure")

	// ErrValidation is returned for malformed user input
	ErrValidation = errors.New("validation error")

	// ErrWalletRejected is returned when the user cancels a wallet prompt
	ErrWalletRejected = errors.New("wallet request rejected")

	// ErrNotOwned is returned when a token is owned by someone else
	ErrNotOwned = errors.New("token not owned by address")

	// ErrUnknownChain is returned for a chain key with no configured upstream
	ErrUnknownChain = errors.New("unknown chain")

	// ErrSuperseded is returned when a newer scan replaced the result of an older one
	ErrSuperseded = errors.New("scan superseded")
)

// ScanError aborts a whole scan
type ScanError struct {
	Op        string
	FromBlock uint64
	ToBlock   uint64
	Err       error
}

func (e *ScanError) Error() string {
	if e.FromBlock != 0 || e.ToBlock != 0 {
		return fmt.Sprintf("scan %s [%d-%d]: %s: %v", e.Op, e.FromBlock, e.ToBlock, ErrEndpointUnavailable, e.Err)
	}
	return fmt.Sprintf("scan %s: %s: %v", e.Op, ErrEndpointUnavailable, e.Err)
}

func (e *ScanError) Unwrap() []error {
	return []error{ErrEndpointUnavailable, e.Err}
}

// VerificationError reports a failed ownerOf call for one token
type VerificationError struct {
	TokenID string
	Err     error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verify token %s: %v", e.TokenID, e.Err)
}

func (e *VerificationError) Unwrap() []error {
	return []error{ErrVerificationFailure, e.Err}
}

// ValidationError reports bad input before any network call is made
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
