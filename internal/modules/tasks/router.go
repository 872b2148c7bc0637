package tasks

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skyops/instructorhub/internal/guard"
	"github.com/skyops/instructorhub/internal/httpx"
	"github.com/skyops/instructorhub/internal/identity"
)

type createRequest struct {
	Title      string    `json:"title"`
	AssigneeID uuid.UUID `json:"assignee_id,omitempty"`
}

// Router mounts the task endpoints behind the permission guard. Reads
// need app access; create and complete need edit rights.
func Router(svc *Service, g *guard.Guard) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(g.RequireApp(identity.AppTasks))
		r.Get("/", listHandler(svc))
	})

	r.Group(func(r chi.Router) {
		r.Use(g.RequireEdit(identity.AppTasks))
		r.Post("/", createHandler(svc))
		r.Post("/{id}/complete", completeHandler(svc))
	})

	return r
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, list)
	}
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		grant, _ := guard.GrantFromContext(r.Context())
		task, err := svc.Create(r.Context(), grant.UserID, req.Title, req.AssigneeID)
		if err != nil {
			if errors.Is(err, ErrEmptyTitle) {
				httpx.Error(w, httpx.ErrBadRequest)
				return
			}
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, task)
	}
}

func completeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}
		if err := svc.Complete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, httpx.ErrNotFound)
				return
			}
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]bool{"done": true})
	}
}
