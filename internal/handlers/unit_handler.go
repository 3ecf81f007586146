package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fulfillment-backend/internal/cache"
	"fulfillment-backend/internal/metrics"
	"fulfillment-backend/internal/models"
	"fulfillment-backend/internal/repositories"
	"fulfillment-backend/internal/services"

	"github.com/gorilla/mux"
)

type UnitHandler struct {
	Service *services.FulfillmentService
}

func NewUnitHandler(s *services.FulfillmentService) *UnitHandler {
	return &UnitHandler{Service: s}
}

// ListByStage serves GET /api/units?stage=...
// Filter keys are additive under AND semantics; an absent query key means the
// filter is simply not applied.
func (h *UnitHandler) ListByStage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stage := q.Get("stage")
	if stage == "" {
		http.Error(w, "stage query parameter is required", http.StatusBadRequest)
		return
	}

	cacheKey := "units:" + r.URL.RawQuery
	if cached, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	f := repositories.UnitFilters{
		Sort:     q.Get("sort"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		Garden:   q.Get("garden"),
		Search:   q.Get("search"),
	}
	if countries := q.Get("source_country"); countries != "" {
		f.SourceCountry = strings.Split(countries, ",")
	}
	f.Seller, _ = strconv.Atoi(q.Get("seller"))
	f.Buyer, _ = strconv.Atoi(q.Get("buyer"))
	f.Receiver, _ = strconv.Atoi(q.Get("receiver"))

	units, total, err := h.Service.ListByStage(r.Context(), stage, f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if units == nil {
		units = []*models.Unit{}
	}

	payload, err := json.Marshal(models.UnitListResponse{Data: units, Total: total})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.SetCached(r.Context(), cacheKey, payload, 30*time.Second)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (h *UnitHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	unit, err := h.Service.Units.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Unit not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(unit)
}

// SetStatus serves POST /api/units/status. The batch path always carries the
// plural id list; a single-unit tag is a one-element batch.
func (h *UnitHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req models.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, counts, err := h.Service.SetStatus(r.Context(), req.OrderIDs, req.Status)
	if err != nil {
		// One aggregate error for the whole batch; no partial success claims
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(models.SetStatusResponse{Success: false, Error: err.Error()})
		return
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(req.Status)).Add(float64(updated))
	cache.InvalidateUnitCaches(r.Context())
	log.Printf("[Units] tagged %d units as %s", updated, req.Status)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.SetStatusResponse{Success: true, Updated: updated, Counts: counts})
}
