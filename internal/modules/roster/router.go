package roster

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

type assignRequest struct {
	ID           uuid.UUID `json:"id,omitempty"`
	Slot         string    `json:"slot"`
	InstructorID uuid.UUID `json:"instructor_id"`
	Activity     string    `json:"activity"`
}

// Router mounts the roster endpoints behind the permission guard.
func Router(svc *Service, g *guard.Guard) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(g.RequireApp(identity.AppRoster))
		r.Get("/{date}", dayHandler(svc))
	})

	r.Group(func(r chi.Router) {
		r.Use(g.RequireEdit(identity.AppRoster))
		r.Put("/{date}/shifts", assignHandler(svc))
	})

	return r
}

func dayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shifts, err := svc.Day(r.Context(), chi.URLParam(r, "date"))
		if err != nil {
			if errors.Is(err, ErrInvalidDate) {
				httpx.Error(w, httpx.ErrBadRequest)
				return
			}
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, shifts)
	}
}

func assignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		shift, err := svc.Assign(r.Context(), Shift{
			ID:           req.ID,
			Date:         chi.URLParam(r, "date"),
			Slot:         Slot(req.Slot),
			InstructorID: req.InstructorID,
			Activity:     req.Activity,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidSlot) {
				httpx.Error(w, httpx.ErrBadRequest)
				return
			}
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, shift)
	}
}
