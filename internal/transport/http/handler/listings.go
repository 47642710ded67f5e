package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gojo-homes/api/internal/application/listing"
	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/pkg/validate"
	"github.com/gojo-homes/api/internal/transport/http/middleware"
)

// ListingHandler handles listing endpoints.
type ListingHandler struct {
	svc listing.Service
}

func NewListingHandler(svc listing.Service) *ListingHandler {
	return &ListingHandler{svc: svc}
}

// Browse is the public listing search. Only active listings are returned.
func (h *ListingHandler) Browse(w http.ResponseWriter, r *http.Request) {
	filter, limit, err := parseBrowseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	listings, err := h.svc.Browse(r.Context(), filter, limit)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// Get returns a single listing. Non-active listings are visible only to
// their creating agent and admins; everyone else gets a 404.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	if l.Status != domain.ListingStatusActive {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || (claims.UserID != l.CreatedBy && claims.Role != domain.RoleAdmin) {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	l, err := h.svc.Create(r.Context(), claims.UserID, claims.Role, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	l, err := h.svc.Update(r.Context(), claims.UserID, claims.Role, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ListingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), claims.UserID, claims.Role, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "listing deleted"})
}

// ListMine returns all of the calling agent's listings, any status.
func (h *ListingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	listings, err := h.svc.ListByAgent(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func parseBrowseQuery(r *http.Request) (domain.ListingFilter, int32, error) {
	q := r.URL.Query()
	filter := domain.ListingFilter{
		Type:    q.Get("type"),
		Purpose: q.Get("purpose"),
		City:    q.Get("city"),
	}

	if v := q.Get("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, 0, fmt.Errorf("invalid query parameter minPrice")
		}
		filter.MinPrice = &f
	}
	if v := q.Get("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, 0, fmt.Errorf("invalid query parameter maxPrice")
		}
		filter.MaxPrice = &f
	}
	if v := q.Get("minBedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, 0, fmt.Errorf("invalid query parameter minBedrooms")
		}
		filter.MinBedrooms = &n
	}

	var limit int32
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, 0, fmt.Errorf("invalid query parameter limit")
		}
		limit = int32(n)
	}
	return filter, limit, nil
}
