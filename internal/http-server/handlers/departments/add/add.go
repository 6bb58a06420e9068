package add

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

type DepartmentAdder interface {
	AddDepartment(ctx context.Context, req *api.DepartmentRequest) (*api.DepartmentResponse, error)
}

type Request struct {
	api.DepartmentRequest
}

type Response struct {
	response.Response
	Department api.DepartmentResponse `json:"department,omitempty"`
}

func New(log *slog.Logger, adder DepartmentAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.departments.add.New"

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

		department, err := adder.AddDepartment(r.Context(), &req.DepartmentRequest)
		if err != nil {
			log.Error("Failed to add department", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to add department"))
			return
		}

		log.Info("Department added", slog.Any("department", department))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Department: *department,
		})
	}
}
