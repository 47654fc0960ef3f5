package domain

import (
	"errors"
	"fmt"
)

var (
	ErrQuestNotFound         = errors.New("quest not found")
	ErrQuestAlreadyCompleted = errors.New("quest already completed")
	ErrDailyLimitReached     = errors.New("daily xp limit reached")
	ErrInvalidPlayerName     = errors.New("player name must be between 1 and 50 characters")
	ErrInvalidPlayerState    = errors.New("invalid player state")
	ErrUnknownSetting        = errors.New("unknown setting")
	ErrInvalidSettingValue   = errors.New("invalid setting value")
	ErrInvalidHabitKind      = errors.New("invalid habit kind")
	ErrInvalidHabitLog       = errors.New("invalid habit log")
	ErrSnapshotNotFound      = errors.New("snapshot not found")
	ErrCorruptSnapshot       = errors.New("saved progress failed validation")
	ErrSaveFailed            = errors.New("failed to save progress")
)

// ErrorKind classifies a rejected game operation.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindAlreadyCompleted ErrorKind = "already_completed"
	KindCapacityExceeded ErrorKind = "capacity_exceeded"
	KindPersistence      ErrorKind = "persistence"
)

// OperationError is the structured failure returned by game operations.
// Reason is a human readable message suitable for display, distinct from Kind.
type OperationError struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func NewValidationError(reason string, err error) *OperationError {
	return &OperationError{Kind: KindValidation, Reason: reason, Err: err}
}

func NewAlreadyCompletedError(reason string, err error) *OperationError {
	return &OperationError{Kind: KindAlreadyCompleted, Reason: reason, Err: err}
}

func NewCapacityError(reason string, err error) *OperationError {
	return &OperationError{Kind: KindCapacityExceeded, Reason: reason, Err: err}
}

func NewPersistenceError(reason string, err error) *OperationError {
	return &OperationError{Kind: KindPersistence, Reason: reason, Err: err}
}

// KindOf reports the kind of an OperationError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind, true
	}
	return "", false
}

// ReasonOf returns the display reason of err, falling back to its message.
func ReasonOf(err error) string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Reason
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
