package oraltest

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

type questionRequest struct {
	Category string `json:"category"`
	Text     string `json:"text"`
	Answer   string `json:"answer"`
}

type examineeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Router mounts the oral-test endpoints. Reading the bank needs app
// access; mutations are page-gated on top of edit rights, so a grant on
// the questions page opens question editing but not examinee management.
func Router(svc *Service, g *guard.Guard) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(g.RequireApp(identity.AppOralTest))
		r.Get("/questions", listQuestionsHandler(svc))
	})

	r.Group(func(r chi.Router) {
		r.Use(g.RequireEditPage(identity.AppOralTest, identity.PageQuestions))
		r.Post("/questions", addQuestionHandler(svc))
		r.Put("/questions/{id}", updateQuestionHandler(svc))
		r.Delete("/questions/{id}", deleteQuestionHandler(svc))
	})

	r.Group(func(r chi.Router) {
		r.Use(g.RequirePage(identity.AppOralTest, identity.PageUsers))
		r.Get("/examinees", listExamineesHandler(svc))
	})

	r.Group(func(r chi.Router) {
		r.Use(g.RequireEditPage(identity.AppOralTest, identity.PageUsers))
		r.Post("/examinees", addExamineeHandler(svc))
	})

	return r
}

func listQuestionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Questions(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, list)
	}
}

func addQuestionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		grant, _ := guard.GrantFromContext(r.Context())
		q, err := svc.AddQuestion(r.Context(), grant.UserID, req.Category, req.Text, req.Answer)
		if err != nil {
			if errors.Is(err, ErrEmptyQuestion) {
				httpx.Error(w, httpx.ErrBadRequest)
				return
			}
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, q)
	}
}

func updateQuestionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}

		err = svc.UpdateQuestion(r.Context(), Question{
			ID:       id,
			Category: req.Category,
			Text:     req.Text,
			Answer:   req.Answer,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyQuestion):
				httpx.Error(w, httpx.ErrBadRequest)
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, httpx.ErrNotFound)
			default:
				httpx.Error(w, err)
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]bool{"updated": true})
	}
}

func deleteQuestionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}
		if err := svc.RemoveQuestion(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, httpx.ErrNotFound)
				return
			}
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

func listExamineesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Examinees(r.Context())
		if err != nil {
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, list)
	}
}

func addExamineeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req examineeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, httpx.ErrBadRequest)
			return
		}
		e, err := svc.AddExaminee(r.Context(), req.Name, req.Email)
		if err != nil {
			httpx.Error(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, e)
	}
}
