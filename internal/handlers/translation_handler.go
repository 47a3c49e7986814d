// File: internal/handlers/translation_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/policylens/policylens/internal/services"
)

type TranslationHandler struct {
	TranslationService *services.TranslationService
}

func NewTranslationHandler(translationService *services.TranslationService) *TranslationHandler {
	return &TranslationHandler{TranslationService: translationService}
}

// Convert translates arbitrary text into the requested language.
func (h *TranslationHandler) Convert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		OriginalText string `json:"original_text"`
		Language     string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	translation, err := h.TranslationService.Convert(r.Context(), userID, req.OriginalText, req.Language)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, translation)
}

// List returns the caller's standalone translations, newest first.
func (h *TranslationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	translations, err := h.TranslationService.ListTranslations(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, translations)
}

// Get returns a single translation owned by the caller.
func (h *TranslationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	translationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid translation ID", http.StatusBadRequest)
		return
	}

	translation, err := h.TranslationService.GetTranslation(r.Context(), userID, translationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, translation)
}

// Delete removes a standalone translation.
func (h *TranslationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	translationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, "invalid translation ID", http.StatusBadRequest)
		return
	}

	if err := h.TranslationService.DeleteTranslation(r.Context(), userID, translationID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
