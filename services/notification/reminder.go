package notification

import (
	"context"
	"fmt"
	"html"

	"medlink/models"
	"medlink/utils"

	"go.uber.org/zap"
)

// AppointmentSource loads what a reminder needs to know.
type AppointmentSource interface {
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetPatient(ctx context.Context, id string) (*models.Patient, error)
}

// ReminderNotifier emails a patient about an appointment and, when the
// patient registered a device, pushes the same reminder.
type ReminderNotifier struct {
	source AppointmentSource
	mailer Mailer
	push   PushSender // nil when push is not configured
}

func NewReminderNotifier(source AppointmentSource, mailer Mailer, push PushSender) *ReminderNotifier {
	return &ReminderNotifier{source: source, mailer: mailer, push: push}
}

func (n *ReminderNotifier) SendAppointmentReminder(ctx context.Context, p models.ReminderPayload) error {
	logger := utils.GetLogger()

	appt, err := n.source.GetAppointment(ctx, p.AppointmentID)
	if err != nil {
		return fmt.Errorf("SendAppointmentReminder: %w", err)
	}
	// Reminders queued before a cancellation are dropped.
	if appt.Cancelled || appt.IsCompleted {
		logger.Info("Skipping reminder for closed appointment", zap.String("appointmentId", appt.ID))
		return nil
	}

	title, body := p.Title, p.Body
	if title == "" {
		title = "Appointment reminder"
	}
	if body == "" {
		body = fmt.Sprintf("You have an appointment with Dr. %s on %s at %s.", appt.DoctorData.Name, appt.SlotDate, appt.SlotTime)
	}

	mail := models.Mail{
		To:      []string{appt.PatientData.Email},
		Subject: title,
		HTML: fmt.Sprintf("<p>Hello %s,</p><p>%s</p><p>Please arrive 10 minutes early.</p>",
			html.EscapeString(appt.PatientData.Name), html.EscapeString(body)),
	}
	if err := n.mailer.Send(ctx, mail); err != nil {
		return err
	}

	if n.push == nil {
		return nil
	}
	patient, err := n.source.GetPatient(ctx, appt.PatientID)
	if err != nil || patient.FCMToken == "" {
		return nil
	}
	data := map[string]string{"appointmentId": appt.ID, "slotDate": appt.SlotDate, "slotTime": appt.SlotTime}
	if err := n.push.Send(ctx, patient.FCMToken, title, body, data); err != nil {
		// Email was delivered; push failures are only logged.
		logger.Warn("Reminder push failed", zap.String("appointmentId", appt.ID), zap.Error(err))
	}
	return nil
}
