package assign

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

type DepartmentAssigner interface {
	AssignDepartment(ctx context.Context, patientID string, req *api.AssignDepartmentRequest) (*api.PatientResponse, error)
}

type Request struct {
	api.AssignDepartmentRequest
}

type Response struct {
	response.Response
	Patient api.PatientResponse `json:"patient,omitempty"`
}

func New(log *slog.Logger, assigner DepartmentAssigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.patients.assign.New"

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

		patient, err := assigner.AssignDepartment(r.Context(), id, &req.AssignDepartmentRequest)

		if errors.Is(err, response.ErrPatientNotFound) {
			log.Error("patient not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.PATIENT_NOT_FOUND), "patient not found"))
			return
		}

		if errors.Is(err, response.ErrInvalidDepartment) {
			log.Error("invalid department choice")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_DEPARTMENT_CHOICE), "invalid department choice"))
			return
		}

		if err != nil {
			log.Error("Failed to assign department", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to assign department"))
			return
		}

		log.Info("Department assigned", slog.String("id", patient.ID), slog.String("department", patient.Department))

		render.JSON(w, r, Response{
			Patient: *patient,
		})
	}
}
