package book

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"hms-service/api"
	"hms-service/pkg/response"
	"hms-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type AppointmentBooker interface {
	BookAppointment(ctx context.Context, patientID string, req *api.AppointmentRequest) (*api.AppointmentResponse, error)
}

type Request struct {
	api.AppointmentRequest
}

type Response struct {
	response.Response
	Appointment api.AppointmentResponse `json:"appointment,omitempty"`
}

func New(log *slog.Logger, booker AppointmentBooker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.patients.book.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)
			log.Error("Invalid request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		appointment, err := booker.BookAppointment(r.Context(), id, &req.AppointmentRequest)

		if errors.Is(err, response.ErrPatientNotFound) {
			log.Error("patient not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.PATIENT_NOT_FOUND), "patient not found"))
			return
		}

		if errors.Is(err, response.ErrNoDepartment) {
			log.Error("patient has no department assigned")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.NO_DEPARTMENT_ASSIGNED), "assign a department first"))
			return
		}

		if errors.Is(err, response.ErrOutOfRange) {
			log.Error("staff index out of range")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.OUT_OF_RANGE), "staff index out of range"))
			return
		}

		if errors.Is(err, response.ErrSlotNotAvailable) {
			log.Error("slot is not available")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.SLOT_NOT_AVAILABLE), "the selected time is not available"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("resource is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "resource is locked"))
			return
		}

		if err != nil {
			log.Error("Failed to book appointment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to book appointment"))
			return
		}

		log.Info("Appointment booked", slog.Any("appointment", appointment))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Appointment: *appointment,
		})
	}
}
