package booking

import (
	"errors"

	"medlink/utils"
)

// classify turns a repository error into an AppError with a user message.
func classify(err error, notFound string) error {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, utils.ErrNotFound):
		return utils.WrapError(utils.ErrNotFound, notFound, err)
	case errors.Is(err, utils.ErrDoctorUnavailable):
		return utils.WrapError(utils.ErrDoctorUnavailable, "Doctor not available", err)
	case errors.Is(err, utils.ErrSlotConflict):
		return utils.WrapError(utils.ErrSlotConflict, "Slot not available", err)
	case errors.Is(err, utils.ErrValidation):
		return utils.WrapError(utils.ErrValidation, "Invalid slot", err)
	default:
		return utils.WrapError(utils.ErrInternal, "Something went wrong, please try again", err)
	}
}
