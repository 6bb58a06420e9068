package intake

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"hms-service/api"
	"hms-service/pkg/response"
	"hms-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type PatientIntaker interface {
	IntakePatient(ctx context.Context, req *api.PatientIntakeRequest) (*api.PatientResponse, error)
}

type Request struct {
	api.PatientIntakeRequest
}

type Response struct {
	response.Response
	Patient api.PatientResponse `json:"patient,omitempty"`
}

func New(log *slog.Logger, intaker PatientIntaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.patients.intake.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

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

		patient, err := intaker.IntakePatient(r.Context(), &req.PatientIntakeRequest)
		if err != nil {
			log.Error("Failed to register patient", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to register patient"))
			return
		}

		log.Info("Patient registered", slog.String("id", patient.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Patient: *patient,
		})
	}
}
