package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusConfirmed
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", httperr.Validation("invalid_status", "Status must be confirmed, completed or cancelled.")
	}
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transitions
// ===============================

// Transition reports whether moving from current to target changes the
// appointment. Re-applying the current status is a no-op, and nothing
// leaves a terminal status.
func Transition(current, target Status) (bool, error) {
	if current == target {
		return false, nil
	}

	if current != StatusConfirmed {
		return false, ErrInvalidTransition
	}

	switch target {
	case StatusCompleted, StatusCancelled:
		return true, nil
	default:
		return false, ErrInvalidTransition
	}
}
