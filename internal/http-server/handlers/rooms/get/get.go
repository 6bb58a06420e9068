package get

import (
	"context"
	"log/slog"
	"net/http"

	"hms-service/api"
	"hms-service/pkg/response"
	"hms-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type RoomLister interface {
	ListRooms(ctx context.Context) ([]*api.RoomResponse, error)
}

type Response struct {
	response.Response
	Rooms []api.RoomResponse `json:"rooms"`
}

func New(log *slog.Logger, lister RoomLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.rooms.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		rooms, err := lister.ListRooms(r.Context())
		if err != nil {
			log.Error("Failed to list rooms", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list rooms"))
			return
		}

		log.Info("Rooms retrieved", slog.Int("count", len(rooms)))

		result := make([]api.RoomResponse, len(rooms))
		for i, room := range rooms {
			result[i] = *room
		}

		render.JSON(w, r, Response{
			Rooms: result,
		})
	}
}
