// internal/domain/entity/errors.go
package entity

import (
	"errors"
	"fmt"
)

// ErrBookingNotFound is returned by the booking lookup when no order exists
// for the given confirmation identifier.
var ErrBookingNotFound = errors.New("booking not found")

// BookingFailureKind classifies a rejected order submission.
type BookingFailureKind int

const (
	// FailureRequest covers validation, auth and server rejections. Never retried.
	FailureRequest BookingFailureKind = iota
	// FailureSegmentSell means the airline could not sell a segment:
	// the inventory drifted under the offer.
	FailureSegmentSell
	// FailureScheduleChange means the flight schedule moved under the offer.
	FailureScheduleChange
)

// String returns the kind label used in logs and error text.
func (k BookingFailureKind) String() string {
	switch k {
	case FailureSegmentSell:
		return "segment sell failure"
	case FailureScheduleChange:
		return "schedule change"
	default:
		return "request error"
	}
}

// BookingError is a classified order-submission failure. The reservation
// adapter maps vendor error codes and payload text to a kind exactly once,
// at the boundary; callers switch on Kind, never on error text.
type BookingError struct {
	Kind   BookingFailureKind
	Status int
	Code   int
	Detail string
}

func (e *BookingError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("booking failed: %s: %s (status %d)", e.Kind, e.Detail, e.Status)
	}
	return fmt.Sprintf("booking failed: %s: %s", e.Kind, e.Detail)
}

// Recoverable reports whether a resync attempt may succeed: true only for
// inventory and schedule drift.
func (e *BookingError) Recoverable() bool {
	return e.Kind == FailureSegmentSell || e.Kind == FailureScheduleChange
}

// ResyncFailureReason identifies why the retry controller gave up.
type ResyncFailureReason int

const (
	// ResyncRetriesExhausted means the retry bound was hit while the
	// failure was still recoverable.
	ResyncRetriesExhausted ResyncFailureReason = iota
	// ResyncNoFreshOffers means a fresh search returned nothing rankable.
	ResyncNoFreshOffers
	// ResyncSearchFailed means the fresh search itself errored.
	ResyncSearchFailed
)

// ResyncError is the terminal failure of the retry controller. Attempts is
// the number of resync cycles performed before giving up.
type ResyncError struct {
	Reason   ResyncFailureReason
	Attempts int
	Cause    error
}

func (e *ResyncError) Error() string {
	switch e.Reason {
	case ResyncNoFreshOffers:
		return fmt.Sprintf("booking resync failed after %d attempt(s): no flights available in fresh search", e.Attempts)
	case ResyncSearchFailed:
		return fmt.Sprintf("booking resync failed after %d attempt(s): fresh search error: %v", e.Attempts, e.Cause)
	default:
		return fmt.Sprintf("booking resync failed: max retries reached after %d attempt(s); flight inventory changed and no booking succeeded", e.Attempts)
	}
}

// Unwrap exposes the underlying collaborator error, if any.
func (e *ResyncError) Unwrap() error {
	return e.Cause
}
