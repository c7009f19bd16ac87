package booking

import (
	"medlink/models"
	"medlink/utils"
)

// An appointment leaves the Booked state exactly once, either by
// cancellation or by completion. Payment is recorded in any state.

func CanCancel(a *models.Appointment) error {
	switch {
	case a.Cancelled:
		return utils.NewError(utils.ErrInvalidTransition, "Appointment is already cancelled")
	case a.IsCompleted:
		return utils.NewError(utils.ErrInvalidTransition, "Completed appointments cannot be cancelled")
	}
	return nil
}

func CanComplete(a *models.Appointment) error {
	switch {
	case a.Cancelled:
		return utils.NewError(utils.ErrInvalidTransition, "Cancelled appointments cannot be completed")
	case a.IsCompleted:
		return utils.NewError(utils.ErrInvalidTransition, "Appointment is already completed")
	}
	return nil
}

// CanMarkPaid always allows recording a verified payment; a refund flow for
// cancelled appointments works off the recorded reference.
func CanMarkPaid(*models.Appointment) error {
	return nil
}

// CanRemind allows reminders only for appointments still in the Booked state.
func CanRemind(a *models.Appointment) error {
	if a.Cancelled || a.IsCompleted {
		return utils.NewError(utils.ErrInvalidTransition, "Reminders can only be sent for upcoming appointments")
	}
	return nil
}
