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

type DepartmentLister interface {
	ListDepartments(ctx context.Context) ([]*api.DepartmentResponse, error)
}

type Response struct {
	response.Response
	Departments []api.DepartmentResponse `json:"departments"`
}

func New(log *slog.Logger, lister DepartmentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.departments.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		departments, err := lister.ListDepartments(r.Context())
		if err != nil {
			log.Error("Failed to list departments", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list departments"))
			return
		}

		log.Info("Departments retrieved", slog.Int("count", len(departments)))

		result := make([]api.DepartmentResponse, len(departments))
		for i, d := range departments {
			result[i] = *d
		}

		render.JSON(w, r, Response{
			Departments: result,
		})
	}
}
