package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appointmentRepo "medlink/database/repository/appointment"
	doctorRepo "medlink/database/repository/doctor"
	patientRepo "medlink/database/repository/patient"
	"medlink/models"
	"medlink/services/payment"
	"medlink/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	utils.SetLogger(zap.NewNop())
}

var fixedNow = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

type scheduled struct {
	payload models.ReminderPayload
	fireAt  time.Time
}

type fakeScheduler struct {
	mu   sync.Mutex
	jobs []scheduled
	err  error
}

func (f *fakeScheduler) ScheduleReminder(_ context.Context, p models.ReminderPayload, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, scheduled{p, fireAt})
	return nil
}

type fakeVerifier struct {
	provider string
	err      error
}

func (f fakeVerifier) Provider() string { return f.provider }

func (f fakeVerifier) Verify(context.Context, string) error { return f.err }

type fixture struct {
	svc       *DefaultBookingService
	doctors   *doctorRepo.MemoryDoctorRepo
	appts     *appointmentRepo.MemoryAppointmentRepo
	reminders *fakeScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	doctors := doctorRepo.NewMemoryDoctorRepo()
	patients := patientRepo.NewMemoryPatientRepo()
	appts := appointmentRepo.NewMemoryAppointmentRepo()

	require.NoError(t, doctors.Create(ctx, &models.Doctor{ID: "D", Name: "Who", Email: "d@example.com", Available: true, Fees: 50}))
	require.NoError(t, doctors.Create(ctx, &models.Doctor{ID: "D2", Name: "Other", Email: "d2@example.com", Available: true, Fees: 80}))
	require.NoError(t, doctors.Create(ctx, &models.Doctor{ID: "OFF", Email: "off@example.com", Available: false}))
	require.NoError(t, patients.Create(ctx, &models.Patient{ID: "P", Name: "Pat", Email: "p@example.com"}))
	require.NoError(t, patients.Create(ctx, &models.Patient{ID: "Q", Name: "Quinn", Email: "q@example.com"}))

	reminders := &fakeScheduler{}
	svc := &DefaultBookingService{
		Doctors:      doctors,
		Appointments: appts,
		Patients:     patients,
		Payments: payment.NewRegistry(
			fakeVerifier{provider: "paypal"},
			fakeVerifier{provider: "stripe", err: payment.ErrNotCompleted},
		),
		Reminders:    reminders,
		ReminderLead: 24 * time.Hour,
		Location:     time.UTC,
		Now:          func() time.Time { return fixedNow },
	}
	return &fixture{svc: svc, doctors: doctors, appts: appts, reminders: reminders}
}

func (f *fixture) slotFree(t *testing.T, doctorID, date, slot string) bool {
	t.Helper()
	d, err := f.doctors.GetByID(context.Background(), doctorID)
	require.NoError(t, err)
	return d.SlotsBooked.IsFree(date, slot)
}

func (f *fixture) book(t *testing.T, date, slot string) *models.Appointment {
	t.Helper()
	appt, err := f.svc.Book(context.Background(), "P", models.BookAppointmentRequest{DoctorID: "D", SlotDate: date, SlotTime: slot})
	require.NoError(t, err)
	return appt
}

func TestBookSnapshotsAndReserves(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, "2024-06-01", "10:00")

	assert.Equal(t, "Who", appt.DoctorData.Name)
	assert.Equal(t, "Pat", appt.PatientData.Name)
	assert.Equal(t, 50.0, appt.Amount)
	assert.False(t, appt.Cancelled || appt.IsCompleted || appt.Payment)
	assert.False(t, f.slotFree(t, "D", "2024-06-01", "10:00"))

	require.Len(t, f.reminders.jobs, 1)
	assert.Equal(t, appt.ID, f.reminders.jobs[0].payload.AppointmentID)
	assert.Equal(t, time.Date(2024, 5, 31, 10, 0, 0, 0, time.UTC), f.reminders.jobs[0].fireAt)
}

func TestBookRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "2024-06-01", "10:00")

	cases := []struct {
		name string
		req  models.BookAppointmentRequest
		kind error
	}{
		{"taken slot", models.BookAppointmentRequest{DoctorID: "D", SlotDate: "2024-06-01", SlotTime: "10:00"}, utils.ErrSlotConflict},
		{"unavailable doctor", models.BookAppointmentRequest{DoctorID: "OFF", SlotDate: "2024-06-01", SlotTime: "10:00"}, utils.ErrDoctorUnavailable},
		{"unknown doctor", models.BookAppointmentRequest{DoctorID: "nope", SlotDate: "2024-06-01", SlotTime: "10:00"}, utils.ErrNotFound},
		{"bad date", models.BookAppointmentRequest{DoctorID: "D", SlotDate: "01/06/2024", SlotTime: "10:00"}, utils.ErrValidation},
		{"bad time", models.BookAppointmentRequest{DoctorID: "D", SlotDate: "2024-06-01", SlotTime: "25:00"}, utils.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Book(ctx, "P", tc.req)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)
		})
	}

	all, _ := f.appts.ListAll(ctx)
	assert.Len(t, all, 1)
	d, _ := f.doctors.GetByID(ctx, "OFF")
	assert.Empty(t, d.SlotsBooked)
}

func TestBookTreatsTimeSpellingsAsOneSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appt := f.book(t, "2024-06-01", "09:00")
	assert.Equal(t, "09:00", appt.SlotTime)

	for _, spelling := range []string{"9:00", "9:00 AM", "9:00am", "09:00 AM"} {
		_, err := f.svc.Book(ctx, "Q", models.BookAppointmentRequest{DoctorID: "D", SlotDate: "2024-06-01", SlotTime: spelling})
		assert.True(t, errors.Is(err, utils.ErrSlotConflict), "%s: got %v", spelling, err)
	}
	d, err := f.doctors.GetByID(ctx, "D")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, d.SlotsBooked["2024-06-01"])

	pm := f.book(t, "2024-06-01", "2:30 pm")
	assert.Equal(t, "14:30", pm.SlotTime)
	require.NoError(t, f.svc.CancelByPatient(ctx, "P", pm.ID))
	assert.True(t, f.slotFree(t, "D", "2024-06-01", "14:30"))
}

func TestNormalizeSlotTime(t *testing.T) {
	cases := map[string]string{
		"9:00":     "09:00",
		"09:00":    "09:00",
		"23:59":    "23:59",
		"12:00 AM": "00:00",
		"12:15PM":  "12:15",
		" 7:05 pm": "19:05",
	}
	for in, want := range cases {
		got, ok := models.NormalizeSlotTime(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"24:00", "13:00 PM", "0:30 AM", "9", "nine"} {
		_, ok := models.NormalizeSlotTime(bad)
		assert.False(t, ok, bad)
	}
}

func TestBookReleasesSlotWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	f.appts.FailCreate = errors.New("write concern timeout")

	_, err := f.svc.Book(context.Background(), "P", models.BookAppointmentRequest{DoctorID: "D", SlotDate: "2024-06-01", SlotTime: "10:00"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInternal))
	assert.True(t, f.slotFree(t, "D", "2024-06-01", "10:00"))
	assert.Empty(t, f.reminders.jobs)
}

func TestBookSurvivesReminderFailure(t *testing.T) {
	f := newFixture(t)
	f.reminders.err = errors.New("redis down")
	f.book(t, "2024-06-01", "10:00")
}

func TestBookSkipsReminderInThePast(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-05-20", "3:00 PM")
	assert.Empty(t, f.reminders.jobs)
}

func TestConcurrentBookingHasOneWinner(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	results := make([]error, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patient := "P"
			if i%2 == 1 {
				patient = "Q"
			}
			_, results[i] = f.svc.Book(context.Background(), patient, models.BookAppointmentRequest{DoctorID: "D", SlotDate: "2024-06-01", SlotTime: "10:00"})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.True(t, errors.Is(err, utils.ErrSlotConflict))
		}
	}
	assert.Equal(t, 1, wins)
	all, _ := f.appts.ListAll(context.Background())
	assert.Len(t, all, 1)
}

func TestCancelReleasesOnlyItsSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "10:00")
	f.book(t, "2024-06-01", "11:00")

	require.NoError(t, f.svc.CancelByPatient(ctx, "P", a.ID))

	assert.True(t, f.slotFree(t, "D", "2024-06-01", "10:00"))
	assert.False(t, f.slotFree(t, "D", "2024-06-01", "11:00"))
	got, _ := f.appts.GetByID(ctx, a.ID)
	assert.True(t, got.Cancelled)
	assert.Equal(t, models.RolePatient, got.CancelledBy)

	// The freed slot can be booked again.
	f.book(t, "2024-06-01", "10:00")
}

type releaseRecorder struct {
	*doctorRepo.MemoryDoctorRepo
	err    error
	ctxErr error
}

func (r *releaseRecorder) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	r.ctxErr = ctx.Err()
	if r.err != nil {
		return r.err
	}
	return r.MemoryDoctorRepo.ReleaseSlot(ctx, doctorID, date, slotTime)
}

func TestCancelSurvivesReleaseFailure(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "2024-06-01", "10:00")
	rec := &releaseRecorder{MemoryDoctorRepo: f.doctors, err: errors.New("primary stepped down")}
	f.svc.Doctors = rec

	require.NoError(t, f.svc.CancelByPatient(context.Background(), "P", a.ID))
	got, err := f.appts.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, got.Cancelled)
}

func TestCancelReleasesAfterClientDisconnect(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "2024-06-01", "10:00")
	rec := &releaseRecorder{MemoryDoctorRepo: f.doctors}
	f.svc.Doctors = rec

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, f.svc.CancelByAdmin(ctx, a.ID))
	assert.NoError(t, rec.ctxErr)
	assert.True(t, f.slotFree(t, "D", "2024-06-01", "10:00"))
}

func TestCancelOwnershipAndAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "10:00")

	err := f.svc.CancelByPatient(ctx, "Q", a.ID)
	assert.True(t, errors.Is(err, utils.ErrForbidden))

	require.NoError(t, f.svc.CancelByAdmin(ctx, a.ID))
	got, _ := f.appts.GetByID(ctx, a.ID)
	assert.Equal(t, models.RoleAdmin, got.CancelledBy)

	err = f.svc.CancelByAdmin(ctx, a.ID)
	assert.True(t, errors.Is(err, utils.ErrInvalidTransition))

	err = f.svc.CancelByAdmin(ctx, "missing")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestCreateCancelCompleteIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "10:00")
	require.NoError(t, f.svc.CancelByPatient(ctx, "P", a.ID))

	err := f.svc.Complete(ctx, "D", a.ID)
	assert.True(t, errors.Is(err, utils.ErrInvalidTransition))
	got, _ := f.appts.GetByID(ctx, a.ID)
	assert.False(t, got.IsCompleted)
}

func TestCompleteOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "10:00")

	assert.True(t, errors.Is(f.svc.Complete(ctx, "D2", a.ID), utils.ErrForbidden))
	require.NoError(t, f.svc.Complete(ctx, "D", a.ID))

	first, _ := f.appts.GetByID(ctx, a.ID)
	err := f.svc.Complete(ctx, "D", a.ID)
	assert.True(t, errors.Is(err, utils.ErrInvalidTransition))
	second, _ := f.appts.GetByID(ctx, a.ID)
	assert.Equal(t, first.CompletedAt, second.CompletedAt)

	// Completed appointments keep their slot and cannot be cancelled.
	assert.True(t, errors.Is(f.svc.CancelByPatient(ctx, "P", a.ID), utils.ErrInvalidTransition))
	assert.False(t, f.slotFree(t, "D", "2024-06-01", "10:00"))
}

func TestPaidAppointmentCanBeCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "10:00")

	require.NoError(t, f.svc.MarkPaid(ctx, "P", a.ID, models.PaymentConfirmation{Provider: "paypal", Reference: "ORDER-1"}))
	got, _ := f.appts.GetByID(ctx, a.ID)
	assert.True(t, got.Payment)
	assert.Equal(t, "ORDER-1", got.PaymentRef)

	require.NoError(t, f.svc.CancelByPatient(ctx, "P", a.ID))
	// Recording the same payment again is harmless.
	require.NoError(t, f.svc.MarkPaid(ctx, "P", a.ID, models.PaymentConfirmation{Provider: "paypal", Reference: "ORDER-1"}))
}

func TestMarkPaidRejectsReusedReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.book(t, "2024-06-01", "10:00")
	second := f.book(t, "2024-06-01", "11:00")

	require.NoError(t, f.svc.MarkPaid(ctx, "P", first.ID, models.PaymentConfirmation{Provider: "paypal", Reference: "ORDER-9"}))
	err := f.svc.MarkPaid(ctx, "P", second.ID, models.PaymentConfirmation{Provider: "paypal", Reference: "ORDER-9"})
	assert.True(t, errors.Is(err, utils.ErrConflict), "got %v", err)
	assert.Equal(t, 409, utils.StatusFor(err))

	got, _ := f.appts.GetByID(ctx, second.ID)
	assert.False(t, got.Payment)
}

func TestMarkPaidFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "10:00")

	err := f.svc.MarkPaid(ctx, "P", a.ID, models.PaymentConfirmation{Provider: "stripe", Reference: "pi_1"})
	assert.True(t, errors.Is(err, utils.ErrValidation))

	err = f.svc.MarkPaid(ctx, "P", a.ID, models.PaymentConfirmation{Provider: "razorpay", Reference: "x"})
	assert.True(t, errors.Is(err, utils.ErrValidation))

	err = f.svc.MarkPaid(ctx, "Q", a.ID, models.PaymentConfirmation{Provider: "paypal", Reference: "x"})
	assert.True(t, errors.Is(err, utils.ErrForbidden))

	f.svc.Payments = payment.NewRegistry(fakeVerifier{provider: "paypal", err: errors.New("dial tcp: timeout")})
	err = f.svc.MarkPaid(ctx, "P", a.ID, models.PaymentConfirmation{Provider: "paypal", Reference: "x"})
	assert.True(t, errors.Is(err, utils.ErrUpstream))

	got, _ := f.appts.GetByID(ctx, a.ID)
	assert.False(t, got.Payment)
}

func TestSendReminder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "2024-06-01", "10:00")
	f.reminders.jobs = nil

	assert.True(t, errors.Is(f.svc.SendReminder(ctx, "D2", a.ID), utils.ErrForbidden))
	require.NoError(t, f.svc.SendReminder(ctx, "D", a.ID))
	require.Len(t, f.reminders.jobs, 1)
	assert.Equal(t, fixedNow, f.reminders.jobs[0].fireAt)
	assert.Contains(t, f.reminders.jobs[0].payload.Title, "Who")

	require.NoError(t, f.svc.CancelByPatient(ctx, "P", a.ID))
	assert.True(t, errors.Is(f.svc.SendReminder(ctx, "D", a.ID), utils.ErrInvalidTransition))
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "2024-06-01", "10:00")
	_, err := f.svc.Book(ctx, "Q", models.BookAppointmentRequest{DoctorID: "D2", SlotDate: "2024-06-01", SlotTime: "10:00"})
	require.NoError(t, err)

	mine, err := f.svc.ListForPatient(ctx, "P")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	docs, err := f.svc.ListForDoctor(ctx, "D2")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Quinn", docs[0].PatientData.Name)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
