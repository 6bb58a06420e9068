package schedule

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"hms-service/api"
	"hms-service/pkg/response"
	"hms-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ScheduleEditor interface {
	EditStaffSchedule(ctx context.Context, index int, req *api.StaffScheduleRequest) (*api.StaffDetailResponse, error)
}

type Request struct {
	api.StaffScheduleRequest
}

type Response struct {
	response.Response
	Staff api.StaffDetailResponse `json:"staff,omitempty"`
}

func New(log *slog.Logger, editor ScheduleEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.staff.schedule.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			log.Error("Invalid staff index", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "staff index must be a number"))
			return
		}

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

		staff, err := editor.EditStaffSchedule(r.Context(), index, &req.StaffScheduleRequest)

		if errors.Is(err, response.ErrOutOfRange) {
			log.Error("staff index out of range")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.OUT_OF_RANGE), "staff index out of range"))
			return
		}

		if err != nil {
			log.Error("Failed to edit schedule", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to edit schedule"))
			return
		}

		log.Info("Schedule updated", slog.String("staff", staff.Name))

		render.JSON(w, r, Response{
			Staff: *staff,
		})
	}
}
