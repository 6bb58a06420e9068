package create

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

type StaffCreator interface {
	CreateStaff(ctx context.Context, req *api.StaffCreateRequest) (*api.StaffDetailResponse, error)
}

type Request struct {
	api.StaffCreateRequest
}

type Response struct {
	response.Response
	Staff api.StaffDetailResponse `json:"staff,omitempty"`
}

func New(log *slog.Logger, creator StaffCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.staff.create.New"

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

		staff, err := creator.CreateStaff(r.Context(), &req.StaffCreateRequest)
		if err != nil {
			log.Error("Failed to create staff member", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create staff member"))
			return
		}

		log.Info("Staff member created", slog.Any("staff", staff))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Staff: *staff,
		})
	}
}
