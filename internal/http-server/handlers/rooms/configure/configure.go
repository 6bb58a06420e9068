package configure

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

type RoomConfigurer interface {
	ConfigureRoom(ctx context.Context, req *api.RoomConfigureRequest) (*api.RoomResponse, error)
}

type Request struct {
	api.RoomConfigureRequest
}

type Response struct {
	response.Response
	Room api.RoomResponse `json:"room,omitempty"`
}

func New(log *slog.Logger, configurer RoomConfigurer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rooms.configure.New"

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

		room, err := configurer.ConfigureRoom(r.Context(), &req.RoomConfigureRequest)
		if err != nil {
			log.Error("Failed to configure room", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to configure room"))
			return
		}

		log.Info("Room configured", slog.Any("room", room))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Room: *room,
		})
	}
}
