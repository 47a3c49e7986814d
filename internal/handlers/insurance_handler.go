// File: internal/handlers/insurance_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/policylens/policylens/internal/domain"
	"github.com/policylens/policylens/internal/services"
)

type InsuranceHandler struct {
	InsuranceService *services.InsuranceService
}

func NewInsuranceHandler(insuranceService *services.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{InsuranceService: insuranceService}
}

func (h *InsuranceHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var policy domain.InsurancePolicy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.InsuranceService.AddPolicy(r.Context(), userID, &policy)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *InsuranceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	policies, err := h.InsuranceService.ListPolicies(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policies)
}

func (h *InsuranceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	policyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid policy ID", http.StatusBadRequest)
		return
	}

	policy, err := h.InsuranceService.GetPolicy(r.Context(), userID, policyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policy)
}

func (h *InsuranceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	policyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid policy ID", http.StatusBadRequest)
		return
	}

	var policy domain.InsurancePolicy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	policy.ID = policyID

	updated, err := h.InsuranceService.UpdatePolicy(r.Context(), userID, &policy)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *InsuranceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	policyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid policy ID", http.StatusBadRequest)
		return
	}

	if err := h.InsuranceService.DeletePolicy(r.Context(), userID, policyID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
