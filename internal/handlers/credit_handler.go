package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"fulfillment-backend/internal/cache"
	"fulfillment-backend/internal/middleware"
	"fulfillment-backend/internal/models"
	"fulfillment-backend/internal/services"

	"github.com/gorilla/mux"
)

type CreditHandler struct {
	Service *services.CreditService
}

func NewCreditHandler(s *services.CreditService) *CreditHandler {
	return &CreditHandler{Service: s}
}

// List serves GET /api/credit-requests?page=&limit=
func (h *CreditHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	cacheKey := "credits:" + r.URL.RawQuery
	if cached, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	requests, total, err := h.Service.List(r.Context(), page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []*models.CreditRequest{}
	}

	payload, err := json.Marshal(models.CreditListResponse{Data: requests, Total: total})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.SetCached(r.Context(), cacheKey, payload, 30*time.Second)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// Review serves POST /api/credit-requests/{id}/review
func (h *CreditHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid credit request ID", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req models.ReviewDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reviewed, err := h.Service.ReviewDecision(r.Context(), id, req.Decision, req.Notes, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	cache.InvalidateCreditCaches(r.Context())
	log.Printf("[Credits] request %d reviewed as %s by user %d", id, req.Decision, userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviewed)
}
