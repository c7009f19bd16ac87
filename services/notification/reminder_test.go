package notification

import (
	"context"
	"errors"
	"testing"

	"medlink/models"
	"medlink/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	utils.SetLogger(zap.NewNop())
}

type MockSource struct {
	mock.Mock
}

func (m *MockSource) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	appt, _ := args.Get(0).(*models.Appointment)
	return appt, args.Error(1)
}

func (m *MockSource) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Patient)
	return p, args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, mail models.Mail) error {
	return m.Called(ctx, mail).Error(0)
}

type MockPush struct {
	mock.Mock
}

func (m *MockPush) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	return m.Called(ctx, token, title, body, data).Error(0)
}

func openAppointment() *models.Appointment {
	return &models.Appointment{
		ID:          "A1",
		PatientID:   "P",
		DoctorID:    "D",
		SlotDate:    "2024-06-01",
		SlotTime:    "10:00",
		PatientData: models.PatientSnapshot{Name: "Pat", Email: "p@example.com"},
		DoctorData:  models.DoctorSnapshot{Name: "Who"},
	}
}

func TestReminderSkipsClosedAppointments(t *testing.T) {
	ctx := context.Background()
	for name, appt := range map[string]*models.Appointment{
		"cancelled": {ID: "A1", Cancelled: true},
		"completed": {ID: "A1", IsCompleted: true},
	} {
		t.Run(name, func(t *testing.T) {
			source, mailer, push := new(MockSource), new(MockMailer), new(MockPush)
			source.On("GetAppointment", ctx, "A1").Return(appt, nil)

			err := NewReminderNotifier(source, mailer, push).SendAppointmentReminder(ctx, models.ReminderPayload{AppointmentID: "A1"})
			require.NoError(t, err)
			mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReminderEmailsAndPushesWithToken(t *testing.T) {
	ctx := context.Background()
	source, mailer, push := new(MockSource), new(MockMailer), new(MockPush)
	source.On("GetAppointment", ctx, "A1").Return(openAppointment(), nil)
	source.On("GetPatient", ctx, "P").Return(&models.Patient{ID: "P", FCMToken: "device-1"}, nil)
	mailer.On("Send", ctx, mock.MatchedBy(func(m models.Mail) bool {
		return len(m.To) == 1 && m.To[0] == "p@example.com" && m.Subject == "Appointment reminder"
	})).Return(nil)
	push.On("Send", ctx, "device-1", "Appointment reminder", mock.AnythingOfType("string"),
		map[string]string{"appointmentId": "A1", "slotDate": "2024-06-01", "slotTime": "10:00"}).Return(nil)

	err := NewReminderNotifier(source, mailer, push).SendAppointmentReminder(ctx, models.ReminderPayload{AppointmentID: "A1", PatientID: "P"})
	require.NoError(t, err)
	mailer.AssertExpectations(t)
	push.AssertExpectations(t)
}

func TestReminderWithoutTokenSkipsPush(t *testing.T) {
	ctx := context.Background()
	source, mailer, push := new(MockSource), new(MockMailer), new(MockPush)
	source.On("GetAppointment", ctx, "A1").Return(openAppointment(), nil)
	source.On("GetPatient", ctx, "P").Return(&models.Patient{ID: "P"}, nil)
	mailer.On("Send", ctx, mock.Anything).Return(nil)

	err := NewReminderNotifier(source, mailer, push).SendAppointmentReminder(ctx, models.ReminderPayload{AppointmentID: "A1"})
	require.NoError(t, err)
	push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderPushFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	source, mailer, push := new(MockSource), new(MockMailer), new(MockPush)
	source.On("GetAppointment", ctx, "A1").Return(openAppointment(), nil)
	source.On("GetPatient", ctx, "P").Return(&models.Patient{ID: "P", FCMToken: "device-1"}, nil)
	mailer.On("Send", ctx, mock.Anything).Return(nil)
	push.On("Send", ctx, "device-1", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("unregistered token"))

	err := NewReminderNotifier(source, mailer, push).SendAppointmentReminder(ctx, models.ReminderPayload{AppointmentID: "A1"})
	assert.NoError(t, err)
	push.AssertExpectations(t)
}

func TestReminderMailFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	source, mailer := new(MockSource), new(MockMailer)
	source.On("GetAppointment", ctx, "A1").Return(openAppointment(), nil)
	mailer.On("Send", ctx, mock.Anything).Return(errors.New("smtp down"))

	err := NewReminderNotifier(source, mailer, nil).SendAppointmentReminder(ctx, models.ReminderPayload{AppointmentID: "A1"})
	assert.EqualError(t, err, "smtp down")
}

func TestReminderUnknownAppointment(t *testing.T) {
	ctx := context.Background()
	source := new(MockSource)
	source.On("GetAppointment", ctx, "gone").Return(nil, utils.ErrNotFound)

	err := NewReminderNotifier(source, new(MockMailer), nil).SendAppointmentReminder(ctx, models.ReminderPayload{AppointmentID: "gone"})
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}
