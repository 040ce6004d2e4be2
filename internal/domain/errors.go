package domain

import "errors"

// Rejection taxonomy. Engine operations wrap these with context via
// fmt.Errorf("...: %w", ...) so callers can classify with errors.Is while
// the HTTP boundary stays free to render rejections silently.
var (
	ErrInvalidPhase = errors.New("action not allowed in current phase")
	ErrUnauthorized = errors.New("caller may not perform this action")
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// RejectionReason returns a short label for a rejection error, used for
// logging and metrics. Unrecognized errors label as "internal".
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPhase):
		return "invalid_phase"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

// IsRejection reports whether err is an engine rejection rather than an
// infrastructure failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidPhase) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound)
}
