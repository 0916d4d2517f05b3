// Package api exposes the neighborhood checker over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/danielerenburg1/address-checker/internal/checker"
	"github.com/danielerenburg1/address-checker/internal/store"
)

// NewRouter builds the HTTP routing table around a checker service.
func NewRouter(svc *checker.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	h := &handler{svc: svc}

	r.Get("/health", h.health)
	r.Get("/neighborhoods", h.listNeighborhoods)
	r.Post("/neighborhoods", h.createNeighborhood)
	r.Delete("/neighborhoods/{id}", h.deleteNeighborhood)
	r.Post("/check", h.check)
	r.Post("/check/batch", h.checkBatch)

	return r
}

type handler struct {
	svc *checker.Service
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listNeighborhoods(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) createNeighborhood(w http.ResponseWriter, r *http.Request) {
	var req checker.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *handler) deleteNeighborhood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.svc.Delete(r.Context(), checker.DeleteRequest{ID: id})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) check(w http.ResponseWriter, r *http.Request) {
	var req checker.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Check(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) checkBatch(w http.ResponseWriter, r *http.Request) {
	var req checker.BatchCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.CheckBatch(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps checker errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case eris.Is(err, checker.ErrNameRequired),
		eris.Is(err, checker.ErrTooFewVertices),
		eris.Is(err, checker.ErrNoLocation):
		writeError(w, http.StatusBadRequest, eris.Cause(err).Error())
	case eris.Is(err, checker.ErrAddressNotFound):
		writeError(w, http.StatusUnprocessableEntity, eris.Cause(err).Error())
	case eris.Is(err, checker.ErrAmbiguousName):
		writeError(w, http.StatusConflict, eris.Cause(err).Error())
	case eris.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "neighborhood not found")
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
