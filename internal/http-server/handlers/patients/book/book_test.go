package book_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hms-service/api"
	"hms-service/internal/http-server/handlers/patients/book"
	"hms-service/internal/lock"
	"hms-service/internal/service"
	"hms-service/internal/storage/memory"
	"hms-service/internal/timetable"
	"hms-service/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupRouter(t *testing.T) (*chi.Mux, *service.Service) {
	t.Helper()

	svc := service.NewService(memory.New(), lock.NewLocalLock())

	router := chi.NewRouter()
	router.Post("/patients/{id}/appointments", book.New(discardLogger(), svc))

	return router, svc
}

func seedCardiology(t *testing.T, svc *service.Service) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.AddDepartment(ctx, &api.DepartmentRequest{Name: "Cardiology"})
	require.NoError(t, err)

	deptIdx := 1
	_, err = svc.CreateStaff(ctx, &api.StaffCreateRequest{Role: "DOCTOR", Name: "Dana", DepartmentIndex: &deptIdx})
	require.NoError(t, err)

	_, err = svc.EditStaffSchedule(ctx, 1, &api.StaffScheduleRequest{
		Edits: []api.ScheduleEdit{{StartHour: 10, EndHour: 10, Status: timetable.StatusWork}},
	})
	require.NoError(t, err)

	_, err = svc.IntakePatient(ctx, &api.PatientIntakeRequest{ID: "P1", Name: "Alice", Age: 30})
	require.NoError(t, err)

	_, err = svc.AssignDepartment(ctx, "P1", &api.AssignDepartmentRequest{DepartmentIndex: 1})
	require.NoError(t, err)
}

func TestBookAppointment_Created(t *testing.T) {
	router, svc := setupRouter(t)
	seedCardiology(t, svc)

	body, err := json.Marshal(api.AppointmentRequest{StaffIndex: 1, Hour: 10})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/patients/P1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp book.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Dana", resp.Appointment.StaffName)
	require.Equal(t, 10, resp.Appointment.Hour)
}

func TestBookAppointment_SlotConflict(t *testing.T) {
	router, svc := setupRouter(t)
	seedCardiology(t, svc)

	body, err := json.Marshal(api.AppointmentRequest{StaffIndex: 1, Hour: 10})
	require.NoError(t, err)

	first := httptest.NewRequest(http.MethodPost, "/patients/P1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, first)
	require.Equal(t, http.StatusCreated, rec.Code)

	second := httptest.NewRequest(http.MethodPost, "/patients/P1/appointments", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, second)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp book.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, string(response.SLOT_NOT_AVAILABLE), resp.Code)
}

func TestBookAppointment_PatientNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	body, err := json.Marshal(api.AppointmentRequest{StaffIndex: 1, Hour: 10})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/patients/P9/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookAppointment_ValidationFailure(t *testing.T) {
	router, svc := setupRouter(t)
	seedCardiology(t, svc)

	// staff_index below 1 never reaches the service
	body, err := json.Marshal(api.AppointmentRequest{StaffIndex: 0, Hour: 10})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/patients/P1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp book.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, string(response.VALIDATION_FAILED), resp.Code)
}
