package booking

import (
	"context"
	"errors"

	"medlink/models"
	"medlink/services/payment"
	"medlink/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) CancelByPatient(ctx context.Context, patientID, appointmentID string) error {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.PatientID != patientID {
		return utils.NewError(utils.ErrForbidden, "Unauthorized action")
	}
	return s.cancel(ctx, appt, models.RolePatient)
}

// CancelByAdmin cancels any appointment without an ownership check.
func (s *DefaultBookingService) CancelByAdmin(ctx context.Context, appointmentID string) error {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return err
	}
	return s.cancel(ctx, appt, models.RoleAdmin)
}

func (s *DefaultBookingService) cancel(ctx context.Context, appt *models.Appointment, by models.Role) error {
	if err := CanCancel(appt); err != nil {
		return err
	}
	ok, err := s.Appointments.MarkCancelled(ctx, appt.ID, by, s.now())
	if err != nil {
		return classify(err, "Appointment not found")
	}
	if !ok {
		// Another request closed it between our read and the update.
		return utils.NewError(utils.ErrInvalidTransition, "Appointment is no longer open")
	}

	// The cancellation is committed; a failed release is logged, not returned.
	if err := s.Doctors.ReleaseSlot(context.WithoutCancel(ctx), appt.DoctorID, appt.SlotDate, appt.SlotTime); err != nil {
		utils.GetLogger().Error("Cancel: slot release failed",
			zap.String("appointmentID", appt.ID), zap.String("doctorID", appt.DoctorID),
			zap.String("slotDate", appt.SlotDate), zap.String("slotTime", appt.SlotTime), zap.Error(err))
	}
	utils.GetLogger().Info("Appointment cancelled", zap.String("appointmentID", appt.ID), zap.String("by", string(by)))
	return nil
}

// Complete marks one of the doctor's own appointments as completed.
func (s *DefaultBookingService) Complete(ctx context.Context, doctorID, appointmentID string) error {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.DoctorID != doctorID {
		return utils.NewError(utils.ErrForbidden, "Unauthorized action")
	}
	if err := CanComplete(appt); err != nil {
		return err
	}
	ok, err := s.Appointments.MarkCompleted(ctx, appt.ID, s.now())
	if err != nil {
		return classify(err, "Appointment not found")
	}
	if !ok {
		return utils.NewError(utils.ErrInvalidTransition, "Appointment is no longer open")
	}
	utils.GetLogger().Info("Appointment completed", zap.String("appointmentID", appt.ID))
	return nil
}

// MarkPaid verifies conf with its provider and records the payment.
func (s *DefaultBookingService) MarkPaid(ctx context.Context, patientID, appointmentID string, conf models.PaymentConfirmation) error {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.PatientID != patientID {
		return utils.NewError(utils.ErrForbidden, "Unauthorized action")
	}
	if err := CanMarkPaid(appt); err != nil {
		return err
	}

	var verifier payment.Verifier
	var ok bool
	if s.Payments != nil {
		verifier, ok = s.Payments.Get(conf.Provider)
	}
	if !ok {
		return utils.NewError(utils.ErrValidation, "Unsupported payment provider")
	}
	if err := verifier.Verify(ctx, conf.Reference); err != nil {
		if errors.Is(err, payment.ErrNotCompleted) {
			return utils.WrapError(utils.ErrValidation, "Payment not completed", err)
		}
		utils.GetLogger().Error("MarkPaid: provider verification failed",
			zap.String("provider", conf.Provider), zap.String("appointmentID", appt.ID), zap.Error(err))
		return utils.WrapError(utils.ErrUpstream, "Payment verification failed", err)
	}

	if err := s.Appointments.MarkPaid(ctx, appt.ID, conf.Provider, conf.Reference, s.now()); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return utils.WrapError(utils.ErrConflict, "Payment has already been used for another appointment", err)
		}
		return classify(err, "Appointment not found")
	}
	utils.GetLogger().Info("Appointment paid", zap.String("appointmentID", appt.ID), zap.String("provider", conf.Provider))
	return nil
}

func (s *DefaultBookingService) SendReminder(ctx context.Context, doctorID, appointmentID string) error {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.DoctorID != doctorID {
		return utils.NewError(utils.ErrForbidden, "Unauthorized action")
	}
	if err := CanRemind(appt); err != nil {
		return err
	}
	if s.Reminders == nil {
		return utils.NewError(utils.ErrValidation, "Reminders are not enabled")
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		Title:         "Appointment reminder from Dr. " + appt.DoctorData.Name,
	}
	if err := s.Reminders.ScheduleReminder(ctx, payload, s.now()); err != nil {
		return utils.WrapError(utils.ErrUpstream, "Reminder could not be queued", err)
	}
	return nil
}
