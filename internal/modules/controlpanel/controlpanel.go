// Package controlpanel exposes the administration surface reserved for
// the super allow-list tier: inspecting any instructor's stored
// permissions and adjusting handicap/authentication levels.
package controlpanel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skyops/instructorhub/internal/guard"
	"github.com/skyops/instructorhub/internal/httpx"
	"github.com/skyops/instructorhub/internal/identity"
)

// ErrInvalidLevel is returned for level values outside the valid range.
var ErrInvalidLevel = errors.New("controlpanel: invalid level")

// maxAuthLevel bounds the ordinal tier; values above it are rejected.
const maxAuthLevel = 10

// Directory is the admin view over instructor records.
type Directory interface {
	ByID(ctx context.Context, id uuid.UUID) (*identity.Instructor, error)
	UpdateAuthLevel(ctx context.Context, id uuid.UUID, level int) error
}

// permissionsView is the admin-facing rendering of a stored record.
type permissionsView struct {
	ID         uuid.UUID       `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Email      string          `json:"email"`
	AuthLevel  int             `json:"auth_level"`
	Apps       identity.Grants `json:"app_permissions"`
}

type levelRequest struct {
	Level int `json:"level"`
}

// Router mounts the control-panel endpoints. Every route sits behind the
// super tier, regardless of any stored control_panel grants.
func Router(dir Directory, g *guard.Guard) chi.Router {
	r := chi.NewRouter()
	r.Use(g.RequireSuper())

	r.Get("/instructors/{id}/permissions", permissionsHandler(dir))
	r.Put("/instructors/{id}/level", levelHandler(dir))

	return r
}

func permissionsHandler(dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		ins, err := dir.ByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, identity.ErrNotFound) {
				httpx.Error(w, httpx.ErrNotFound)
				return
			}
			httpx.Error(w, err)
			return
		}

		httpx.JSON(w, http.StatusOK, permissionsView{
			ID:         ins.ID,
			EmployeeID: ins.EmployeeID,
			Email:      ins.Email,
			AuthLevel:  ins.AuthLevel,
			Apps:       ins.Apps,
		})
	}
}

func levelHandler(dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		var req levelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}
		if req.Level < 0 || req.Level > maxAuthLevel {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		if err := dir.UpdateAuthLevel(r.Context(), id, req.Level); err != nil {
			if errors.Is(err, identity.ErrNotFound) {
				httpx.Error(w, httpx.ErrNotFound)
				return
			}
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]int{"level": req.Level})
	}
}
