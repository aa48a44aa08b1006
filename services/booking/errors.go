package booking

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound   = errors.New("booking session not found")
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrSubmissionPending = errors.New("submission already in progress")
	ErrAlreadySubmitted  = errors.New("booking already submitted")
	ErrSubmissionFailed  = errors.New("booking submission failed")

	ErrTransitionRejected = errors.New("transition rejected")
	ErrNotReady           = errors.New("booking is not at the confirm step")
	ErrMissingDate        = errors.New("date is required")
	ErrInvalidDate        = errors.New("date is not selectable")
	ErrDateUnavailable    = errors.New("vendor is closed on the selected date")
	ErrMissingTime        = errors.New("time is required")
	ErrInvalidTime        = errors.New("time is not a bookable slot")
	ErrIncompleteDetails  = errors.New("customer details are incomplete")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrCoinsUnavailable   = errors.New("coin redemption is not available")
	ErrInsufficientCoins  = errors.New("wallet balance is too low")
	ErrIdentityRequired   = errors.New("customer identity is required")
)

var validationErrors = []error{
	ErrTransitionRejected,
	ErrNotReady,
	ErrMissingDate,
	ErrInvalidDate,
	ErrDateUnavailable,
	ErrMissingTime,
	ErrInvalidTime,
	ErrIncompleteDetails,
	ErrPasswordTooShort,
	ErrCoinsUnavailable,
	ErrInsufficientCoins,
	ErrIdentityRequired,
}

// IsValidation reports whether err is an inline, non-fatal input problem.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ConflictError is returned when just-in-time signup hits an email that
// already has an account. The booking selections stay in the session and
// ResumeToken lets the client return to them after logging in.
type ConflictError struct {
	Email       string
	ResumeToken string
	Err         error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("email %s is already registered", e.Email)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func isConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
