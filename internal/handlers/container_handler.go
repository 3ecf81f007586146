package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"fulfillment-backend/internal/cache"
	"fulfillment-backend/internal/metrics"
	"fulfillment-backend/internal/models"
	"fulfillment-backend/internal/services"

	"github.com/gorilla/mux"
)

type ContainerHandler struct {
	Service *services.ContainerService
}

func NewContainerHandler(s *services.ContainerService) *ContainerHandler {
	return &ContainerHandler{Service: s}
}

// Assign serves POST /api/containers/assign — the single code path for
// grouping one unit or a whole selection.
func (h *ContainerHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req models.AssignContainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	containerID, err := h.Service.Assign(r.Context(), &req)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(models.AssignContainerResponse{Success: false, Error: err.Error()})
		return
	}

	metrics.ContainerAssignmentsTotal.WithLabelValues(string(req.Kind())).Inc()
	cache.InvalidateUnitCaches(r.Context())
	log.Printf("[Containers] grouped %d units into %s %q", len(req.OrderIDs), req.Kind(), req.Code())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.AssignContainerResponse{Success: true, ContainerID: containerID})
}

// Lookup serves GET /api/containers/{kind}/{code}/units
func (h *ContainerHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind := models.ContainerKind(vars["kind"])
	code := vars["code"]

	detail, err := h.Service.Lookup(r.Context(), kind, code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if detail.Data == nil {
		detail.Data = []*models.Unit{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}
