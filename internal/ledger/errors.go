package ledger

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes entry-point failures.
type ErrorCode string

const (
	// ErrCodeDuplicateListing indicates a create with an id that is
	// already registered. Recoverable: the caller picks a new id.
	ErrCodeDuplicateListing ErrorCode = "DUPLICATE_LISTING"

	// ErrCodeListingNotFound indicates a settlement against an unknown
	// id. No value moves and no state changes.
	ErrCodeListingNotFound ErrorCode = "LISTING_NOT_FOUND"

	// ErrCodeAmountMismatch indicates a settlement whose attached
	// deposit differs from the listing's required amount. No transfer
	// is scheduled and no counter changes; the boundary layer returns
	// any escrowed value to the caller.
	ErrCodeAmountMismatch ErrorCode = "AMOUNT_MISMATCH"

	// ErrCodeReinitAttempted indicates init against an already
	// initialized registry.
	ErrCodeReinitAttempted ErrorCode = "REINIT_ATTEMPTED"
)

// Error is a coded entry-point failure. Every variant terminates the
// call; retry, if any, is the caller's responsibility via a corrected
// resubmission.
type Error struct {
	Code      ErrorCode
	Message   string
	ListingID string
	Details   map[string]string
}

func (e *Error) Error() string {
	if e.ListingID != "" {
		return fmt.Sprintf("%s: %s (listing=%s)", e.Code, e.Message, e.ListingID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the error code from err, or "" if err is not a
// ledger error. Unwraps wrapped errors.
func CodeOf(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// IsDuplicateListing reports whether err is a DUPLICATE_LISTING error.
func IsDuplicateListing(err error) bool { return CodeOf(err) == ErrCodeDuplicateListing }

// IsListingNotFound reports whether err is a LISTING_NOT_FOUND error.
func IsListingNotFound(err error) bool { return CodeOf(err) == ErrCodeListingNotFound }

// IsAmountMismatch reports whether err is an AMOUNT_MISMATCH error.
func IsAmountMismatch(err error) bool { return CodeOf(err) == ErrCodeAmountMismatch }

// IsReinitAttempted reports whether err is a REINIT_ATTEMPTED error.
func IsReinitAttempted(err error) bool { return CodeOf(err) == ErrCodeReinitAttempted }

// NewDuplicateListingError creates the error for a create collision.
func NewDuplicateListingError(id string) *Error {
	return &Error{
		Code:      ErrCodeDuplicateListing,
		Message:   "a listing with this id already exists",
		ListingID: id,
	}
}

// NewListingNotFoundError creates the error for an unknown listing id.
func NewListingNotFoundError(id string) *Error {
	return &Error{
		Code:      ErrCodeListingNotFound,
		Message:   "listing not found",
		ListingID: id,
	}
}

// NewAmountMismatchError creates the error for a wrong attached
// deposit, carrying both amounts for diagnostics.
func NewAmountMismatchError(id string, required, attached Amount) *Error {
	return &Error{
		Code:      ErrCodeAmountMismatch,
		Message:   fmt.Sprintf("attached deposit must equal the required amount (required %s, attached %s)", required, attached),
		ListingID: id,
		Details: map[string]string{
			"required": required.String(),
			"attached": attached.String(),
		},
	}
}

// NewReinitAttemptedError creates the error for repeated init.
func NewReinitAttemptedError() *Error {
	return &Error{
		Code:    ErrCodeReinitAttempted,
		Message: "registry is already initialized",
	}
}

// ValidationError reports malformed call input, rejected before any
// state is read or written. Distinct from the coded Error variants,
// which describe conflicts with existing registry state.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError creates a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is an input validation failure.
// Unwraps wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
