package update

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
)

type RoomUpdater interface {
	UpdateRoom(ctx context.Context, index int, req *api.RoomUpdateRequest) (*api.RoomResponse, error)
}

type Request struct {
	api.RoomUpdateRequest
}

type Response struct {
	response.Response
	Room api.RoomResponse `json:"room,omitempty"`
}

func New(log *slog.Logger, updater RoomUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rooms.update.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			log.Error("Invalid room index", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "room index must be a number"))
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

		room, err := updater.UpdateRoom(r.Context(), index, &req.RoomUpdateRequest)

		if errors.Is(err, response.ErrOutOfRange) {
			log.Error("room index out of range")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.OUT_OF_RANGE), "room index out of range"))
			return
		}

		if err != nil {
			log.Error("Failed to update room", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update room"))
			return
		}

		log.Info("Room updated", slog.Any("room", room))

		render.JSON(w, r, Response{
			Room: *room,
		})
	}
}
