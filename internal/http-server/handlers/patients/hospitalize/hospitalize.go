package hospitalize

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

type Hospitalizer interface {
	Hospitalize(ctx context.Context, patientID string, req *api.HospitalizeRequest) (*api.HospitalizeResponse, error)
}

type Request struct {
	api.HospitalizeRequest
}

type Response struct {
	response.Response
	Patient api.PatientResponse `json:"patient,omitempty"`
	Room    api.RoomResponse    `json:"room,omitempty"`
}

func New(log *slog.Logger, hospitalizer Hospitalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.patients.hospitalize.New"

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

		result, err := hospitalizer.Hospitalize(r.Context(), id, &req.HospitalizeRequest)

		if errors.Is(err, response.ErrPatientNotFound) {
			log.Error("patient not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.PATIENT_NOT_FOUND), "patient not found"))
			return
		}

		if errors.Is(err, response.ErrAlreadyHospitalized) {
			log.Error("patient is already hospitalized")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.ALREADY_HOSPITALIZED), "patient is already hospitalized"))
			return
		}

		if errors.Is(err, response.ErrOutOfRange) {
			log.Error("room index out of range")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.OUT_OF_RANGE), "room index out of range"))
			return
		}

		if errors.Is(err, response.ErrRoomNotAvailable) {
			log.Error("no rooms available")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.ROOM_NOT_AVAILABLE), "no rooms of this type available"))
			return
		}

		if errors.Is(err, response.ErrLocked) {
			log.Error("resource is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "resource is locked"))
			return
		}

		if err != nil {
			log.Error("Failed to hospitalize patient", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to hospitalize patient"))
			return
		}

		log.Info("Patient hospitalized",
			slog.String("id", result.Patient.ID),
			slog.String("room_type", result.Room.Type),
		)

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Patient: result.Patient,
			Room:    result.Room,
		})
	}
}
