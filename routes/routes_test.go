package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	adminRepo "medlink/database/repository/admin"
	appointmentRepo "medlink/database/repository/appointment"
	doctorRepo "medlink/database/repository/doctor"
	patientRepo "medlink/database/repository/patient"
	"medlink/handlers"
	"medlink/middleware"
	"medlink/models"
	"medlink/services/auth"
	"medlink/services/booking"
	"medlink/services/doctor"
	"medlink/services/patient"
	"medlink/services/payment"
	"medlink/utils"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetLogger(zap.NewNop())
	utils.SetJWTSecret("routes-secret")
	if err := utils.RegisterValidations(); err != nil {
		panic(err)
	}
}

type server struct {
	router  *gin.Engine
	doctors *doctorRepo.MemoryDoctorRepo
}

func newServer(t *testing.T) *server {
	t.Helper()
	patients := patientRepo.NewMemoryPatientRepo()
	doctors := doctorRepo.NewMemoryDoctorRepo()
	admins := adminRepo.NewMemoryAdminRepo()
	appts := appointmentRepo.NewMemoryAppointmentRepo()

	require.NoError(t, doctors.Create(context.Background(), &models.Doctor{
		ID: "doc1", Name: "Grey", Email: "grey@clinic.com", Available: true, Fees: 50,
	}))

	bookingSvc := &booking.DefaultBookingService{
		Doctors:      doctors,
		Appointments: appts,
		Patients:     patients,
		Payments:     payment.NewRegistry(),
		Location:     time.UTC,
		Now:          func() time.Time { return time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC) },
	}
	doctorSvc := &doctor.DefaultDoctorService{Repo: doctors}

	bundle := &handlers.HandlerBundle{
		Patient: &handlers.PatientHandler{PatientService: &patient.DefaultPatientService{Repo: patients}, BookingService: bookingSvc},
		Doctor:  &handlers.DoctorHandler{DoctorService: doctorSvc, BookingService: bookingSvc},
		Admin:   &handlers.AdminHandler{DoctorService: doctorSvc, BookingService: bookingSvc},
		Auth:    &handlers.AuthHandler{},
	}
	r := gin.New()
	RegisterRoutes(r, bundle, Options{
		Auth:           &middleware.Authenticator{Accounts: auth.NewAccountResolver(patients, doctors, admins)},
		Metrics:        middleware.NewMetrics(),
		RequestsPerMin: 10000,
	})
	return &server{router: r, doctors: doctors}
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func registerPatient(t *testing.T, s *server) string {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/api/user/register", "", gin.H{
		"name": "Ann", "email": "ann@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, code, body)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func doctorToken(t *testing.T) string {
	t.Helper()
	tok, err := utils.GenerateToken("doc1", "grey@clinic.com", models.RoleDoctor, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestRootEndpoints(t *testing.T) {
	s := newServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "API Working", w.Body.String())

	code, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, body = s.do(t, http.MethodGet, "/api/doctor/list", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["doctors"], 1)

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `medlink_http_requests_total{method="GET",path="/api/doctor/list",status="200"} 1`)
}

func TestBookingOverHTTP(t *testing.T) {
	s := newServer(t)
	patientTok := registerPatient(t, s)
	slot := gin.H{"docId": "doc1", "slotDate": "2024-06-01", "slotTime": "10:00"}

	code, _ := s.do(t, http.MethodPost, "/api/user/bookappointment", "", slot)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := s.do(t, http.MethodPost, "/api/user/bookappointment", patientTok, slot)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["success"])
	appt, _ := body["appointment"].(map[string]interface{})
	apptID, _ := appt["id"].(string)
	require.NotEmpty(t, apptID)

	code, body = s.do(t, http.MethodPost, "/api/user/bookappointment", patientTok, slot)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Slot not available", body["message"])

	code, body = s.do(t, http.MethodGet, "/api/doctor/appointments", doctorToken(t), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["appointments"], 1)

	code, _ = s.do(t, http.MethodPost, "/api/user/cancelappointment", patientTok, gin.H{"appointmentId": apptID})
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/doctor/complete-appointment", doctorToken(t), gin.H{"appointmentId": apptID})
	assert.Equal(t, http.StatusConflict, code)

	// The cancelled slot can be booked again.
	code, _ = s.do(t, http.MethodPost, "/api/user/bookappointment", patientTok, slot)
	assert.Equal(t, http.StatusOK, code)
}

func TestBookingRequestValidation(t *testing.T) {
	s := newServer(t)
	tok := registerPatient(t, s)

	code, body := s.do(t, http.MethodPost, "/api/user/bookappointment", tok, gin.H{
		"docId": "doc1", "slotDate": "01/06/2024", "slotTime": "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "slotDate must be a YYYY-MM-DD date", body["message"])

	code, _ = s.do(t, http.MethodPost, "/api/user/bookappointment", tok, gin.H{
		"docId": "ghost", "slotDate": "2024-06-01", "slotTime": "10:00",
	})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRoleSeparation(t *testing.T) {
	s := newServer(t)
	patientTok := registerPatient(t, s)

	code, _ := s.do(t, http.MethodGet, "/api/user/appointments", doctorToken(t), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodGet, "/api/doctor/appointments", patientTok, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodGet, "/api/admin/all-doctors", patientTok, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// A well-formed token for an account that does not exist is rejected.
	ghost, err := utils.GenerateToken("ghost", "ghost@example.com", models.RolePatient, time.Hour)
	require.NoError(t, err)
	code, _ = s.do(t, http.MethodGet, "/api/user/appointments", ghost, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestDoctorAvailabilityBlocksBooking(t *testing.T) {
	s := newServer(t)
	patientTok := registerPatient(t, s)

	code, body := s.do(t, http.MethodPost, "/api/doctor/change-availability", doctorToken(t), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["available"])

	code, body = s.do(t, http.MethodPost, "/api/user/bookappointment", patientTok, gin.H{
		"docId": "doc1", "slotDate": "2024-06-01", "slotTime": "11:00",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Doctor not available", body["message"])
}
