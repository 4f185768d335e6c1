package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidPortfolioID = 4001
	CodeInvalidHour        = 4002
	CodeInvalidSessionID   = 4003
	CodeInvalidOwnerName   = 4004
	CodeSlotLocked         = 4090
	CodeOperatorBusy       = 4091
	CodeNotHolder          = 4230
	CodePortfolioNotFound  = 4040
	CodeReservationMissing = 4041

	// 5xxx - Server errors
	CodeInternalServer   = 5000
	CodeStoreUnavailable = 5030
)

// Base error types
var (
	// ErrInvalidPortfolioID is returned when the portfolio ID is not a positive integer
	ErrInvalidPortfolioID = errors.New("portfolio ID must be positive")

	// ErrInvalidPortfolioName is returned when a portfolio name is empty
	ErrInvalidPortfolioName = errors.New("portfolio name cannot be empty")

	// ErrInvalidHour is returned when the hour is outside 0-23
	ErrInvalidHour = errors.New("hour must be between 0 and 23")

	// ErrInvalidSessionID is returned when the client session identifier is empty
	ErrInvalidSessionID = errors.New("session ID cannot be empty")

	// ErrInvalidOwnerName is returned when the operator display name is empty
	ErrInvalidOwnerName = errors.New("owner name cannot be empty")

	// ErrSlotLocked is returned when another session holds a live reservation on the slot
	ErrSlotLocked = errors.New("slot is locked by another operator")

	// ErrOperatorBusy is returned when the session already holds a live reservation elsewhere
	ErrOperatorBusy = errors.New("operator already holds another slot")

	// ErrNotHolder is returned when a write requires holding the slot and the session does not
	ErrNotHolder = errors.New("session does not hold the slot reservation")

	// ErrPortfolioNotFound is returned when the requested portfolio doesn't exist
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrReservationNotFound is returned when no live reservation exists for a slot
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrStaleSelection is returned internally when an acquisition response arrives
	// for a selection the client has already moved away from; it is never surfaced
	ErrStaleSelection = errors.New("acquisition response is stale")

	// ErrHourRolledOver is returned when an operation targets an hour that is no longer current
	ErrHourRolledOver = errors.New("hour has rolled over")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrStoreUnavailable is returned when the reservation store cannot be reached
	ErrStoreUnavailable = errors.New("reservation store unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPortfolioID):
		return CodeInvalidPortfolioID
	case errors.Is(err, ErrInvalidHour):
		return CodeInvalidHour
	case errors.Is(err, ErrInvalidSessionID):
		return CodeInvalidSessionID
	case errors.Is(err, ErrInvalidOwnerName):
		return CodeInvalidOwnerName
	case errors.Is(err, ErrSlotLocked):
		return CodeSlotLocked
	case errors.Is(err, ErrOperatorBusy):
		return CodeOperatorBusy
	case errors.Is(err, ErrNotHolder):
		return CodeNotHolder
	case errors.Is(err, ErrPortfolioNotFound):
		return CodePortfolioNotFound
	case errors.Is(err, ErrReservationNotFound):
		return CodeReservationMissing
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	default:
		return CodeInternalServer
	}
}

// SlotLockedError reports that a slot is held by a different session and by
// whom, so the UI can display "locked by <owner>"
type SlotLockedError struct {
	PortfolioID uint64
	Hour        int
	OwnerName   string
}

// Error implements the error interface
func (e *SlotLockedError) Error() string {
	return fmt.Sprintf("slot portfolio=%d hour=%d is locked by %s",
		e.PortfolioID, e.Hour, e.OwnerName)
}

// Is checks if the target error is an ErrSlotLocked
func (e *SlotLockedError) Is(target error) bool {
	return target == ErrSlotLocked
}

// LogFields returns a map of fields for structured logging
func (e *SlotLockedError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "slot_locked",
		"portfolio_id": e.PortfolioID,
		"hour":         e.Hour,
		"owner_name":   e.OwnerName,
		"error_code":   CodeSlotLocked,
	}
}

// NewSlotLockedError creates a new detailed slot-locked error
func NewSlotLockedError(portfolioID uint64, hour int, ownerName string) error {
	return &SlotLockedError{
		PortfolioID: portfolioID,
		Hour:        hour,
		OwnerName:   ownerName,
	}
}

// OperatorBusyError reports that the requesting session already holds a live
// reservation on a different slot that is not yet completed
type OperatorBusyError struct {
	SessionID       string
	HeldPortfolioID uint64
	HeldHour        int
}

// Error implements the error interface
func (e *OperatorBusyError) Error() string {
	return fmt.Sprintf("session %s already holds portfolio=%d hour=%d; finish that slot first",
		e.SessionID, e.HeldPortfolioID, e.HeldHour)
}

// Is checks if the target error is an ErrOperatorBusy
func (e *OperatorBusyError) Is(target error) bool {
	return target == ErrOperatorBusy
}

// LogFields returns a map of fields for structured logging
func (e *OperatorBusyError) LogFields() map[string]any {
	return map[string]any{
		"error_type":        "operator_busy",
		"session_id":        e.SessionID,
		"held_portfolio_id": e.HeldPortfolioID,
		"held_hour":         e.HeldHour,
		"error_code":        CodeOperatorBusy,
	}
}

// NewOperatorBusyError creates a new detailed operator-busy error
func NewOperatorBusyError(sessionID string, heldPortfolioID uint64, heldHour int) error {
	return &OperatorBusyError{
		SessionID:       sessionID,
		HeldPortfolioID: heldPortfolioID,
		HeldHour:        heldHour,
	}
}

// ReservationError wraps a store-level failure with the slot it targeted
type ReservationError struct {
	PortfolioID uint64
	Hour        int
	Operation   string
	Err         error
}

// Error implements the error interface
func (e *ReservationError) Error() string {
	return fmt.Sprintf("reservation %s failed for portfolio=%d hour=%d: %v",
		e.Operation, e.PortfolioID, e.Hour, e.Err)
}

// Unwrap returns the underlying error
func (e *ReservationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ReservationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "reservation_error",
		"portfolio_id": e.PortfolioID,
		"hour":         e.Hour,
		"operation":    e.Operation,
		"error":        e.Err.Error(),
		"error_code":   ErrorCode(e.Err),
	}
}

// NewReservationError creates a detailed reservation error
func NewReservationError(portfolioID uint64, hour int, operation string, err error) error {
	return &ReservationError{
		PortfolioID: portfolioID,
		Hour:        hour,
		Operation:   operation,
		Err:         err,
	}
}

// IsSlotLockedError checks if the error means the slot is held by someone else
func IsSlotLockedError(err error) bool {
	return errors.Is(err, ErrSlotLocked)
}

// IsOperatorBusyError checks if the error means the session holds another slot
func IsOperatorBusyError(err error) bool {
	return errors.Is(err, ErrOperatorBusy)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPortfolioNotFound) ||
		errors.Is(err, ErrReservationNotFound)
}

// IsStoreUnavailableError checks if the error is a transient store failure
func IsStoreUnavailableError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
