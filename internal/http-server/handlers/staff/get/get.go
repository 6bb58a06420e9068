package get

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

type StaffGetter interface {
	GetStaff(ctx context.Context, index int) (*api.StaffDetailResponse, error)
	ListStaff(ctx context.Context, department *string) ([]*api.StaffResponse, error)
}

type Response struct {
	response.Response
	Staff  []api.StaffResponse      `json:"staff,omitempty"`
	Member *api.StaffDetailResponse `json:"member,omitempty"`
}

func New(log *slog.Logger, getter StaffGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.staff.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		indexParam := chi.URLParam(r, "index")

		if indexParam != "" {
			index, err := strconv.Atoi(indexParam)
			if err != nil {
				log.Error("Invalid staff index", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "staff index must be a number"))
				return
			}

			member, err := getter.GetStaff(r.Context(), index)

			if errors.Is(err, response.ErrOutOfRange) {
				log.Error("staff index out of range")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.OUT_OF_RANGE), "staff index out of range"))
				return
			}

			if err != nil {
				log.Error("Failed to get staff member", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get staff member"))
				return
			}

			log.Info("Staff member retrieved", slog.Any("member", member))
			render.JSON(w, r, Response{Member: member})
			return
		}

		var department *string
		if dept := r.URL.Query().Get("department"); dept != "" {
			department = &dept
		}

		staff, err := getter.ListStaff(r.Context(), department)
		if err != nil {
			log.Error("Failed to list staff", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list staff"))
			return
		}

		log.Info("Staff retrieved", slog.Int("count", len(staff)))

		result := make([]api.StaffResponse, len(staff))
		for i, member := range staff {
			result[i] = *member
		}

		render.JSON(w, r, Response{
			Staff: result,
		})
	}
}
