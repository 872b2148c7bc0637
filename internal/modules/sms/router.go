package sms

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/skyops/instructorhub/internal/guard"
	"github.com/skyops/instructorhub/internal/httpx"
	"github.com/skyops/instructorhub/internal/identity"
)

type fileRequest struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

// Router mounts the safety-management endpoints. The section URL segment
// is validated against the sms page set, and the per-request grant's
// page list decides which sections the caller may touch.
func Router(svc *Service, g *guard.Guard) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(g.RequireApp(identity.AppSMS))
		r.Get("/{section}", listHandler(svc))
	})

	r.Group(func(r chi.Router) {
		r.Use(g.RequireEdit(identity.AppSMS))
		r.Post("/{section}", fileHandler(svc))
	})

	return r
}

// sectionFromRequest resolves the section parameter against the closed
// page set and the caller's grant. Unknown sections are a deny, not an
// error, matching the closed-world rule.
func sectionFromRequest(r *http.Request) (identity.Page, error) {
	section, ok := identity.ParsePage(identity.AppSMS, chi.URLParam(r, "section"))
	if !ok {
		return "", httpx.ErrForbidden
	}
	grant, ok := guard.GrantFromContext(r.Context())
	if !ok || !slices.Contains(grant.Pages, section) {
		return "", httpx.ErrForbidden
	}
	return section, nil
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section, err := sectionFromRequest(r)
		if err != nil {
			httpx.Error(w, err)
			return
		}
		list, err := svc.List(r.Context(), section)
		if err != nil {
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, list)
	}
}

func fileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section, err := sectionFromRequest(r)
		if err != nil {
			httpx.Error(w, err)
			return
		}

		var req fileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		grant, _ := guard.GrantFromContext(r.Context())
		report, err := svc.File(r.Context(), grant.UserID, section, req.Title, req.Details)
		if err != nil {
			if errors.Is(err, ErrEmptyTitle) {
				httpx.Error(w, httpx.ErrBadRequest)
				return
			}
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, report)
	}
}
