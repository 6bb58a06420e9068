package discharge

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

type PatientDischarger interface {
	DischargePatient(ctx context.Context, req *api.DischargeRequest) (*api.DischargeResponse, error)
}

type Request struct {
	api.DischargeRequest
}

type Response struct {
	response.Response
	TotalCost float64             `json:"total_cost"`
	Patient   api.PatientResponse `json:"patient,omitempty"`
}

func New(log *slog.Logger, discharger PatientDischarger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.patients.discharge.New"

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

		result, err := discharger.DischargePatient(r.Context(), &req.DischargeRequest)

		if errors.Is(err, response.ErrPatientNotFound) {
			log.Error("patient not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.PATIENT_NOT_FOUND), "patient not found"))
			return
		}

		if err != nil {
			log.Error("Failed to discharge patient", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to discharge patient"))
			return
		}

		log.Info("Patient discharged",
			slog.String("name", result.Patient.Name),
			slog.Float64("total_cost", result.TotalCost),
		)

		render.JSON(w, r, Response{
			TotalCost: result.TotalCost,
			Patient:   result.Patient,
		})
	}
}
