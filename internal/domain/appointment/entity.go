package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if _, err := Transition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if _, err := Transition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Apply moves ap to target and reports whether the status changed. Notes, when
// given, are written even if the status stays the same.
func Apply(ap *models.Appointment, target Status, notes *string, now time.Time) (bool, error) {
	changed, err := Transition(Status(ap.Status), target)
	if err != nil {
		return false, err
	}

	if notes != nil {
		ap.Notes = *notes
	}

	if !changed {
		return false, nil
	}

	switch target {
	case StatusCompleted:
		return true, Complete(ap, now)
	case StatusCancelled:
		return true, Cancel(ap, now)
	}

	return false, ErrInvalidTransition
}
