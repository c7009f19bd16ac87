package booking

import (
	"context"

	"medlink/models"
	"medlink/utils"

	"go.uber.org/zap"
)

// Book reserves the requested slot and records the appointment. The slot is
// released again if the appointment cannot be stored.
func (s *DefaultBookingService) Book(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()
	slotTime, ok := models.NormalizeSlotTime(req.SlotTime)
	if !models.ValidSlotDate(req.SlotDate) || !ok {
		return nil, utils.NewError(utils.ErrValidation, "Invalid slot date or time")
	}

	doc, err := s.Doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, classify(err, "Doctor not found")
	}
	if !doc.Available {
		return nil, utils.NewError(utils.ErrDoctorUnavailable, "Doctor not available")
	}
	if !doc.SlotsBooked.IsFree(req.SlotDate, slotTime) {
		return nil, utils.NewError(utils.ErrSlotConflict, "Slot not available")
	}

	patient, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, classify(err, "User not found")
	}

	// The read above can be stale; the reservation itself is the atomic check.
	if err := s.Doctors.ReserveSlot(ctx, doc.ID, req.SlotDate, slotTime); err != nil {
		return nil, classify(err, "Doctor not found")
	}

	appt := &models.Appointment{
		ID:          utils.NewID(),
		PatientID:   patient.ID,
		DoctorID:    doc.ID,
		PatientData: patient.Snapshot(),
		DoctorData:  doc.Snapshot(),
		SlotDate:    req.SlotDate,
		SlotTime:    slotTime,
		Amount:      doc.Fees,
		Date:        s.now(),
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		logger.Error("Book: appointment insert failed, releasing slot",
			zap.String("doctorID", doc.ID), zap.String("slotDate", req.SlotDate), zap.String("slotTime", slotTime), zap.Error(err))
		if relErr := s.Doctors.ReleaseSlot(context.WithoutCancel(ctx), doc.ID, req.SlotDate, slotTime); relErr != nil {
			logger.Error("Book: slot release failed", zap.String("doctorID", doc.ID), zap.Error(relErr))
		}
		return nil, classify(err, "Appointment not found")
	}

	logger.Info("Appointment booked", zap.String("appointmentID", appt.ID), zap.String("doctorID", doc.ID), zap.String("patientID", patient.ID))
	s.scheduleReminder(ctx, appt)
	return appt, nil
}

// scheduleReminder queues the pre-appointment reminder. Failures are logged
// and never fail the booking.
func (s *DefaultBookingService) scheduleReminder(ctx context.Context, appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	start, err := models.SlotStart(appt.SlotDate, appt.SlotTime, s.location())
	if err != nil {
		return
	}
	fireAt := start.Add(-s.ReminderLead)
	if !fireAt.After(s.now()) {
		return
	}
	payload := models.ReminderPayload{AppointmentID: appt.ID, PatientID: appt.PatientID}
	if err := s.Reminders.ScheduleReminder(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Warn("Reminder not scheduled", zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}
