package handlers

import (
	"encoding/json"
	"net/http"

	"fulfillment-backend/internal/models"
	"fulfillment-backend/internal/services"
	"fulfillment-backend/pkg/utils"
)

type LabelHandler struct {
	Service *services.LabelService
}

func NewLabelHandler(s *services.LabelService) *LabelHandler {
	return &LabelHandler{Service: s}
}

// Generate serves POST /api/labels/generate. The batch is all-or-nothing:
// a success response carries exactly one label per requested id.
func (h *LabelHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateLabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	batchID, labels, err := h.Service.Generate(r.Context(), req.OrderIDs)
	if err != nil {
		utils.JSON(w, http.StatusUnprocessableEntity,
			models.GenerateLabelsResponse{Success: false, Error: err.Error()})
		return
	}

	utils.JSON(w, http.StatusOK,
		models.GenerateLabelsResponse{Success: true, BatchID: batchID, Labels: labels})
}

// Email serves POST /api/labels/email
func (h *LabelHandler) Email(w http.ResponseWriter, r *http.Request) {
	var req models.EmailLabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sentTo, err := h.Service.Email(r.Context(), req.OrderIDs)
	if err != nil {
		utils.JSON(w, http.StatusBadGateway,
			models.EmailLabelsResponse{Success: false, Error: err.Error()})
		return
	}

	resp := models.EmailLabelsResponse{Success: true, Message: "Labels sent"}
	resp.Details.SentTo = sentTo
	utils.JSON(w, http.StatusOK, resp)
}
