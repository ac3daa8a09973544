package domain

import "errors"

// Error kinds. Every error returned by use cases and services wraps exactly
// one of them, so transport layers can classify failures with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidationFailed  = errors.New("validation failed")
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
)

// Kind names as exposed to API clients
const (
	KindNotFound          = "NotFound"
	KindValidationFailed  = "ValidationFailed"
	KindSlotUnavailable   = "SlotUnavailable"
	KindConflict          = "Conflict"
	KindForbidden         = "Forbidden"
	KindInvalidTransition = "InvalidTransition"
	KindInternal          = "Internal"
)

// ErrorKind returns the kind name of err, or KindInternal when err wraps no kind
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidationFailed):
		return KindValidationFailed
	case errors.Is(err, ErrSlotUnavailable):
		return KindSlotUnavailable
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	default:
		return KindInternal
	}
}
